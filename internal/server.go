package internal

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// GracefulShutdown serves e on port until SIGINT or SIGTERM and then gives
// in-flight requests ten seconds to finish.
func GracefulShutdown(e *echo.Echo, port string, logger *zap.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", zap.String("port", port))
		if err := e.Start(port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("err starting server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("err shutting down server", zap.Error(err))
	}
}

func GetCORSConfig(c *Configuration) middleware.CORSConfig {
	return middleware.CORSConfig{
		AllowOrigins: c.CORSOrigins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
	}
}

func GetRateLimiterConfig(c *Configuration) middleware.RateLimiterConfig {
	return middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(c.RateLimitPerSecond),
				Burst:     c.RateLimitBurst,
				ExpiresIn: 3 * time.Minute,
			},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
		},
	}
}

// BodyLimit returns the request body limit in the form echo's BodyLimit
// middleware expects.
func (c *Configuration) BodyLimit() string {
	mb := c.MaxUploadMB
	if mb <= 0 {
		mb = 2
	}
	return strconv.FormatInt(mb, 10) + "M"
}
