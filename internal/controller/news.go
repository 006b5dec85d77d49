package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	ctx "github.com/krakosik/happenings/internal/context"
	"github.com/krakosik/happenings/internal/dto"
	"github.com/krakosik/happenings/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	msgAdded       = "News added successfully!"
	msgDuplicate   = "Similar news already exists!"
	msgInvalidBody = "Invalid request body"
	msgAddFailed   = "Failed to add news"
	msgListFailed  = "Failed to fetch news"
)

type NewsController interface {
	List(c echo.Context) error
	Add(c echo.Context) error
	ProxyImage(c echo.Context) error
	SyncGoogleForm(c echo.Context) error
}

type newsController struct {
	submissionService service.SubmissionService
	imageService      service.ImageService
	formService       service.FormService
}

func newNewsController(submissionService service.SubmissionService, imageService service.ImageService, formService service.FormService) NewsController {
	return &newsController{
		submissionService: submissionService,
		imageService:      imageService,
		formService:       formService,
	}
}

func (n *newsController) List(c echo.Context) error {
	items, err := n.submissionService.List(c.Request().Context())
	if err != nil {
		logrus.Errorf("Error listing news: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": msgListFailed})
	}
	return c.JSON(http.StatusOK, items)
}

func (n *newsController) Add(c echo.Context) error {
	// The body is read as JSON whatever Content-Type the client sent.
	var request dto.AddSubmissionRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&request); err != nil {
		return c.JSON(http.StatusBadRequest, dto.AddSubmissionResponse{Success: false, Message: msgInvalidBody})
	}
	trimRequest(&request)

	if err := c.Validate(&request); err != nil {
		return c.JSON(http.StatusBadRequest, dto.AddSubmissionResponse{Success: false, Message: validationMessage(err)})
	}

	created, err := n.submissionService.Add(c.Request().Context(), request)
	if err != nil {
		var duplicate *dto.DuplicateError
		switch {
		case errors.As(err, &duplicate):
			return c.JSON(http.StatusConflict, dto.DuplicateResponse{
				Success:         false,
				Message:         msgDuplicate,
				SimilarityScore: duplicate.Score,
			})
		case errors.Is(err, dto.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, dto.AddSubmissionResponse{Success: false, Message: validationMessage(err)})
		default:
			logrus.Errorf("Error adding news: %v", err)
			return c.JSON(http.StatusInternalServerError, dto.AddSubmissionResponse{Success: false, Message: msgAddFailed})
		}
	}

	return c.JSON(http.StatusOK, dto.AddSubmissionResponse{
		Success: true,
		Message: msgAdded,
		Data:    created,
	})
}

func (n *newsController) ProxyImage(c echo.Context) error {
	return c.Redirect(http.StatusFound, n.imageService.ProxyURL(c.Param("id")))
}

func (n *newsController) SyncGoogleForm(c echo.Context) error {
	if admin, ok := ctx.GetAdminFromContext(c.Request().Context()); ok {
		logrus.Infof("Form sync requested by %s", admin.Email)
	}

	rows, err := n.formService.Sync(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.SyncFormResponse{Success: false, Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto.SyncFormResponse{Success: true, Data: rows})
}

func trimRequest(request *dto.AddSubmissionRequest) {
	request.Title = strings.TrimSpace(request.Title)
	request.Description = strings.TrimSpace(request.Description)
	request.Location = strings.TrimSpace(request.Location)
	request.Name = strings.TrimSpace(request.Name)
	request.Phone = strings.TrimSpace(request.Phone)
	request.Category = strings.TrimSpace(request.Category)
	request.ImageURL = strings.TrimSpace(request.ImageURL)
	request.EventDate = strings.TrimSpace(request.EventDate)
}

// validationMessage strips the sentinel prefix so clients see only the field problem.
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), dto.ErrInvalidInput.Error()+": ")
}
