package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ctx "github.com/krakosik/happenings/internal/context"
	"github.com/krakosik/happenings/internal/dto"
	"github.com/krakosik/happenings/internal/metrics"
	"github.com/krakosik/happenings/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type NewsControllerSuite struct {
	suite.Suite

	echo         *echo.Echo
	metrics      *metrics.Metrics
	submissions  *mockSubmissionService
	images       *mockImageService
	forms        *mockFormService
	auth         *mockAuthService
	repositories *mockRepositories
}

func TestNewsControllerSuite(t *testing.T) {
	suite.Run(t, new(NewsControllerSuite))
}

func (s *NewsControllerSuite) SetupTest() {
	s.submissions = new(mockSubmissionService)
	s.images = new(mockImageService)
	s.forms = new(mockFormService)
	s.auth = nil
	s.repositories = new(mockRepositories)
	s.route()
}

// route rebuilds the router so tests can switch admin auth on.
func (s *NewsControllerSuite) route() {
	services := mockServices{submission: s.submissions, image: s.images, form: s.forms}
	if s.auth != nil {
		services.auth = s.auth
	}

	registry := prometheus.NewRegistry()
	s.metrics = metrics.New(registry)
	s.echo = echo.New()
	NewControllers(services, s.repositories, s.metrics, registry).Route(s.echo)
}

func (s *NewsControllerSuite) do(method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *NewsControllerSuite) decode(rec *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

const validBody = `{"title":" Farmers market ","description":"Fresh produce","location":"Square","name":"Ana","imageUrl":"","eventDate":"2025-04-05"}`

func (s *NewsControllerSuite) TestList() {
	s.submissions.On("List", mock.Anything).Return([]dto.NewsItem{
		{ID: 2, Title: "Concert", Author: "Bo", Date: "March 14, 2025", Time: "03:30 PM", HoursAgo: 5},
	}, nil)

	for _, target := range []string{"/news/", "/news"} {
		rec := s.do(http.MethodGet, target, "", nil)
		s.Equal(http.StatusOK, rec.Code)

		var items []dto.NewsItem
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &items))
		s.Require().Len(items, 1)
		s.Equal("Concert", items[0].Title)
		s.Equal(int64(5), items[0].HoursAgo)
	}
}

func (s *NewsControllerSuite) TestListFailure() {
	s.submissions.On("List", mock.Anything).Return(nil, dto.ErrInternalFailure)

	rec := s.do(http.MethodGet, "/news/", "", nil)
	s.Equal(http.StatusInternalServerError, rec.Code)
}

func (s *NewsControllerSuite) TestListEmptyIsArray() {
	s.submissions.On("List", mock.Anything).Return([]dto.NewsItem{}, nil)

	rec := s.do(http.MethodGet, "/news/", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[]`, rec.Body.String())
}

func (s *NewsControllerSuite) TestAdd() {
	s.submissions.On("Add", mock.Anything, mock.MatchedBy(func(r dto.AddSubmissionRequest) bool {
		return r.Title == "Farmers market" && r.EventDate == "2025-04-05"
	})).Return(model.Submission{ID: 4, Title: "Farmers market"}, nil)

	rec := s.do(http.MethodPost, "/news/add", validBody, nil)
	s.Equal(http.StatusOK, rec.Code)

	body := s.decode(rec)
	s.Equal(true, body["success"])
	s.Equal("News added successfully!", body["message"])
	data := body["data"].(map[string]interface{})
	s.Equal(float64(4), data["id"])
	s.Equal(false, data["isApproved"])
	s.Nil(data["similarityScore"])
}

func (s *NewsControllerSuite) TestAddReadsJSONWithoutContentType() {
	s.submissions.On("Add", mock.Anything, mock.MatchedBy(func(r dto.AddSubmissionRequest) bool {
		return r.Title == "Farmers market" && r.Name == "Ana"
	})).Return(model.Submission{ID: 5, Title: "Farmers market"}, nil)

	for _, contentType := range []string{"", "text/plain;charset=UTF-8"} {
		req := httptest.NewRequest(http.MethodPost, "/news/add", strings.NewReader(validBody))
		if contentType != "" {
			req.Header.Set(echo.HeaderContentType, contentType)
		}
		rec := httptest.NewRecorder()
		s.echo.ServeHTTP(rec, req)

		s.Equal(http.StatusOK, rec.Code, "content type %q", contentType)
		s.Equal(true, s.decode(rec)["success"])
	}
	s.submissions.AssertNumberOfCalls(s.T(), "Add", 2)
}

func (s *NewsControllerSuite) TestAddDuplicate() {
	s.submissions.On("Add", mock.Anything, mock.Anything).
		Return(model.Submission{}, &dto.DuplicateError{Score: 0.93, SubmissionID: 1})

	rec := s.do(http.MethodPost, "/news/add", validBody, nil)
	s.Equal(http.StatusConflict, rec.Code)
	s.JSONEq(`{"success":false,"message":"Similar news already exists!","similarityScore":0.93}`, rec.Body.String())
}

func (s *NewsControllerSuite) TestAddValidation() {
	testCases := []struct {
		name    string
		body    string
		message string
	}{
		{"malformed json", `{"title":`, "Invalid request body"},
		{"not an object", `["title"]`, "Invalid request body"},
		{"missing title", `{"description":"d","location":"l","name":"n"}`, "title is required"},
		{"blank description", `{"title":"t","description":"   ","location":"l","name":"n"}`, "description is required"},
		{"long location", fmt.Sprintf(`{"title":"t","description":"d","location":"%s","name":"n"}`, strings.Repeat("x", 101)), "location must be at most 100 characters"},
		{"long phone", `{"title":"t","description":"d","location":"l","name":"n","phone":"0123456789012345"}`, "phone must be at most 15 characters"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			rec := s.do(http.MethodPost, "/news/add", tc.body, nil)
			s.Equal(http.StatusBadRequest, rec.Code)
			body := s.decode(rec)
			s.Equal(false, body["success"])
			s.Equal(tc.message, body["message"])
		})
	}
	s.submissions.AssertNotCalled(s.T(), "Add", mock.Anything, mock.Anything)
}

func (s *NewsControllerSuite) TestAddInvalidDate() {
	s.submissions.On("Add", mock.Anything, mock.Anything).
		Return(model.Submission{}, fmt.Errorf("%w: eventDate %q is not a recognised date", dto.ErrInvalidInput, "soon"))

	rec := s.do(http.MethodPost, "/news/add", validBody, nil)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(`eventDate "soon" is not a recognised date`, s.decode(rec)["message"])
}

func (s *NewsControllerSuite) TestAddInternalError() {
	s.submissions.On("Add", mock.Anything, mock.Anything).
		Return(model.Submission{}, fmt.Errorf("%w: connection reset", dto.ErrInternalFailure))

	rec := s.do(http.MethodPost, "/news/add", validBody, nil)
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal(false, s.decode(rec)["success"])
}

func (s *NewsControllerSuite) TestProxyImage() {
	s.images.On("ProxyURL", "file-1").Return("https://www.googleapis.com/drive/v3/files/file-1?alt=media&key=k")

	rec := s.do(http.MethodGet, "/news/proxy-image/file-1", "", nil)
	s.Equal(http.StatusFound, rec.Code)
	s.Equal("https://www.googleapis.com/drive/v3/files/file-1?alt=media&key=k", rec.Header().Get(echo.HeaderLocation))
}

func (s *NewsControllerSuite) TestSyncGoogleForm() {
	s.forms.On("Sync", mock.Anything).Return([][]string{{"Timestamp", "Title"}, {"1/1/2025", "Fair"}}, nil)

	rec := s.do(http.MethodGet, "/news/sync-google-form", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"success":true,"data":[["Timestamp","Title"],["1/1/2025","Fair"]]}`, rec.Body.String())
}

func (s *NewsControllerSuite) TestSyncGoogleFormFailure() {
	s.forms.On("Sync", mock.Anything).Return(nil, errors.New("No data found in the Google Sheet"))

	rec := s.do(http.MethodGet, "/news/sync-google-form", "", nil)
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.JSONEq(`{"success":false,"error":"No data found in the Google Sheet"}`, rec.Body.String())
}

func (s *NewsControllerSuite) TestSyncGoogleFormRequiresTokenWhenAuthConfigured() {
	s.auth = new(mockAuthService)
	s.route()

	s.auth.On("ValidateToken", mock.Anything, "good").Return(dto.Admin{UID: "u1", Email: "admin@example.com"}, nil)
	s.auth.On("ValidateToken", mock.Anything, "bad").Return(dto.Admin{}, dto.ErrNotAuthorized)
	s.forms.On("Sync", mock.MatchedBy(func(c context.Context) bool {
		admin, ok := c.Value(ctx.AdminContextKey).(dto.Admin)
		return ok && admin.Email == "admin@example.com"
	})).Return([][]string{{"a"}}, nil)

	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/news/sync-google-form", "", nil).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/news/sync-google-form", "", map[string]string{"Authorization": "good"}).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/news/sync-google-form", "", map[string]string{"Authorization": "Bearer bad"}).Code)

	rec := s.do(http.MethodGet, "/news/sync-google-form", "", map[string]string{"Authorization": "Bearer good"})
	s.Equal(http.StatusOK, rec.Code)
	s.forms.AssertNumberOfCalls(s.T(), "Sync", 1)
}

func (s *NewsControllerSuite) TestRequestMetrics() {
	s.images.On("ProxyURL", mock.Anything).Return("https://example.com")

	s.do(http.MethodGet, "/news/proxy-image/a", "", nil)
	s.do(http.MethodGet, "/news/proxy-image/b", "", nil)

	s.Equal(2.0, testutil.ToFloat64(s.metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/news/proxy-image/:id", "302")))
}
