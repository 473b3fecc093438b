package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Pinger reports whether a backing store is reachable.
type Pinger func(context.Context) error

func SetupHealthRoutes(g *echo.Group, pingers map[string]Pinger, logger *zap.Logger) {
	g.GET("/health", func(c echo.Context) error {
		status := http.StatusOK
		checks := make(map[string]string, len(pingers))
		for name, ping := range pingers {
			if err := ping(c.Request().Context()); err != nil {
				logger.Warn("health check failed", zap.String("check", name), zap.Error(err))
				checks[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}
		return c.JSON(status, map[string]any{"status": http.StatusText(status), "checks": checks})
	})
}
