package controller

import (
	"github.com/krakosik/happenings/internal/metrics"
	"github.com/krakosik/happenings/internal/repository"
	"github.com/krakosik/happenings/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Controllers interface {
	News() NewsController
	Info() InfoController

	Route(e *echo.Echo)
}

type controllers struct {
	newsController NewsController
	infoController InfoController
	authService    service.AuthService
	metrics        *metrics.Metrics
	gatherer       prometheus.Gatherer
}

func NewControllers(services service.Services, repositories repository.Repositories, m *metrics.Metrics, gatherer prometheus.Gatherer) Controllers {
	newsController := newNewsController(services.Submission(), services.Image(), services.Form())
	infoController := newInfoController(repositories)
	return &controllers{
		newsController: newsController,
		infoController: infoController,
		authService:    services.Auth(),
		metrics:        m,
		gatherer:       gatherer,
	}
}

func (c controllers) News() NewsController {
	return c.newsController
}

func (c controllers) Info() InfoController {
	return c.infoController
}

func (c controllers) Route(e *echo.Echo) {
	e.Validator = newRequestValidator()
	e.Use(metricsMiddleware(c.metrics))

	e.GET("/", c.infoController.Info)
	e.GET("/ready", c.infoController.Ready)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})))

	news := e.Group("/news")
	news.GET("", c.newsController.List)
	news.GET("/", c.newsController.List)
	news.GET("/proxy-image/:id", c.newsController.ProxyImage)
	news.GET("/sync-google-form", c.newsController.SyncGoogleForm, adminAuth(c.authService))
	news.POST("/add", c.newsController.Add)
}
