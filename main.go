package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/krakosik/happenings/internal/client"
	"github.com/krakosik/happenings/internal/controller"
	"github.com/krakosik/happenings/internal/dto"
	"github.com/krakosik/happenings/internal/metrics"
	"github.com/krakosik/happenings/internal/repository"
	"github.com/krakosik/happenings/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := dto.LoadConfig()
	if err != nil {
		logrus.Panic(err)
	}
	setupLogging(cfg)

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logrus.Panic(err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	repositories := repository.NewRepositories(db)
	clients := client.NewClients(cfg)
	services := service.NewServices(repositories, cfg, clients, m)
	controllers := controller.NewControllers(services, repositories, m, prometheus.DefaultGatherer)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(corsConfig(cfg)))
	e.Use(controller.RequestLogger())
	controllers.Route(e)

	go func() {
		logrus.Infof("Listening on :%s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logrus.Errorf("Error shutting down server: %v", err)
	}
	if err := clients.Close(); err != nil {
		logrus.Errorf("Error closing clients: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func setupLogging(cfg dto.Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("Unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func corsConfig(cfg dto.Config) middleware.CORSConfig {
	config := middleware.DefaultCORSConfig
	if len(cfg.CORSAllowedOrigins) > 0 {
		config.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return config
}
