package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/haatos/simple-lms/internal/service"
	"github.com/haatos/simple-lms/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type SessionReader interface {
	GetSession(context.Context, string) (*store.AuthSession, error)
}

type SessionCookieReader interface {
	GetSessionID(echo.Context) (string, error)
	RemoveSessionCookie(echo.Context)
}

// SessionMiddleware loads the session referenced by the request's cookie
// into the context. Requests without a valid session continue anonymously;
// a stale cookie is removed.
func SessionMiddleware(
	sessions SessionReader,
	cookies SessionCookieReader,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID, err := cookies.GetSessionID(c)
			if err != nil {
				if !errors.Is(err, http.ErrNoCookie) {
					cookies.RemoveSessionCookie(c)
				}
				return next(c)
			}

			as, err := sessions.GetSession(c.Request().Context(), sessionID)
			if err != nil {
				if errors.Is(err, service.ErrSessionNotFound) {
					cookies.RemoveSessionCookie(c)
					return next(c)
				}
				return newError(c, err, http.StatusInternalServerError, "unable to read session")
			}
			setCtxSession(c, as)
			return next(c)
		}
	}
}

// RequireUser rejects requests whose session does not belong to a user.
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !getCtxSession(c).HasUser() {
			return newError(c, nil, http.StatusUnauthorized, "not logged in")
		}
		return next(c)
	}
}

func RequireSuperAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !getCtxSession(c).IsSuperAdmin() {
			return newError(c, nil, http.StatusUnauthorized, "unauthorized")
		}
		return next(c)
	}
}

func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURIPath:  true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("path", v.URIPath),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("ip", v.RemoteIP),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}
