package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/krakosik/happenings/internal/repository"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const readyTimeout = 2 * time.Second

type InfoController interface {
	Info(c echo.Context) error
	Ready(c echo.Context) error
}

type infoController struct {
	repositories repository.Repositories
}

func newInfoController(repositories repository.Repositories) InfoController {
	return &infoController{repositories: repositories}
}

func (i *infoController) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"name":   "happenings",
		"status": "ok",
	})
}

// Ready reports whether the database answers a ping and a count of the
// submissions table.
func (i *infoController) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readyTimeout)
	defer cancel()

	if err := i.repositories.Ping(ctx); err != nil {
		logrus.Warnf("Readiness check failed: %v", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}

	count, err := i.repositories.Submission().Count(ctx)
	if err != nil {
		logrus.Warnf("Readiness check failed: %v", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ready",
		"submissions": count,
	})
}
