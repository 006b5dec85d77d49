package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	ctx "github.com/krakosik/happenings/internal/context"
	"github.com/krakosik/happenings/internal/dto"
	"github.com/krakosik/happenings/internal/metrics"
	"github.com/krakosik/happenings/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// adminAuth requires a Firebase ID token in the Authorization header. With no
// auth service configured it lets every request through.
func adminAuth(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if authService == nil {
			return next
		}
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(http.StatusUnauthorized, dto.SyncFormResponse{Success: false, Error: "missing authorization header"})
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header {
				return c.JSON(http.StatusUnauthorized, dto.SyncFormResponse{Success: false, Error: "invalid authorization format"})
			}

			admin, err := authService.ValidateToken(c.Request().Context(), token)
			if err != nil {
				logrus.Warnf("Rejected admin request: %v", err)
				return c.JSON(http.StatusUnauthorized, dto.SyncFormResponse{Success: false, Error: "invalid token"})
			}

			c.SetRequest(c.Request().WithContext(ctx.WithAdmin(c.Request().Context(), admin)))
			return next(c)
		}
	}
}

// metricsMiddleware records request count and latency per route template.
func metricsMiddleware(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			code := c.Response().Status
			if err != nil {
				code = http.StatusInternalServerError
				var httpErr *echo.HTTPError
				if errors.As(err, &httpErr) {
					code = httpErr.Code
				}
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method
			status := strconv.Itoa(code)

			m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
			m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// RequestLogger sends one access log line per request to logrus.
func RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := logrus.WithFields(logrus.Fields{
				"method":    v.Method,
				"uri":       v.URI,
				"status":    v.Status,
				"latency":   v.Latency,
				"remote_ip": v.RemoteIP,
			})
			switch {
			case v.Error != nil:
				entry.WithError(v.Error).Error("request failed")
			case v.Status >= http.StatusInternalServerError:
				entry.Error("request")
			default:
				entry.Info("request")
			}
			return nil
		},
	})
}
