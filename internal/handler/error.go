package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/haatos/simple-lms/internal/security"
	"github.com/haatos/simple-lms/internal/service"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// ErrorHandler renders every error as {"error": message}. Internal errors
// are logged and never sent to the client.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "something went wrong"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(status)
			}
			if he.Internal != nil {
				logError(logger, c, status, he.Internal)
			}
		} else {
			logError(logger, c, status, err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, errorResponse{Error: message})
		}
		if err != nil {
			logger.Error("err writing error response", zap.Error(err))
		}
	}
}

func logError(logger *zap.Logger, c echo.Context, status int, err error) {
	fields := []zap.Field{
		zap.String("method", c.Request().Method),
		zap.String("path", c.Request().URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", fields...)
	} else {
		logger.Debug("handler error", fields...)
	}
}

func newError(c echo.Context, err error, status int, message string) error {
	e := echo.NewHTTPError(status, message)
	if err != nil {
		e = e.WithInternal(err)
	}
	return e
}

// serviceError maps service errors to responses. fallback is used as the
// message of unexpected errors.
func serviceError(c echo.Context, err error, fallback string) error {
	var fieldErr *service.MissingFieldError
	switch {
	case errors.As(err, &fieldErr):
		return newError(c, err, http.StatusBadRequest, "missing required fields: "+strings.Join(fieldErr.Fields, ", "))
	case errors.Is(err, service.ErrMissingField):
		return newError(c, err, http.StatusBadRequest, "missing required fields")
	case errors.Is(err, security.ErrPasswordTooLong):
		return newError(c, err, http.StatusBadRequest, "password is too long")
	case errors.Is(err, service.ErrInvalidInput):
		return newError(c, err, http.StatusBadRequest, "invalid input")
	case errors.Is(err, service.ErrUnsupportedFile):
		return newError(c, err, http.StatusBadRequest, "unsupported file type")
	case errors.Is(err, service.ErrDuplicateUsername):
		return newError(c, err, http.StatusConflict, "username already exists")
	case errors.Is(err, service.ErrDuplicateEmail):
		return newError(c, err, http.StatusConflict, "email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		return newError(c, err, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrUnauthenticated):
		return newError(c, err, http.StatusUnauthorized, "not logged in")
	case errors.Is(err, service.ErrForbidden):
		return newError(c, err, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, service.ErrInvalidCode):
		return newError(c, err, http.StatusBadRequest, "invalid reset code")
	case errors.Is(err, service.ErrExpiredCode):
		return newError(c, err, http.StatusBadRequest, "reset code expired")
	case errors.Is(err, service.ErrUserNotFound):
		return newError(c, err, http.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrNotFound):
		return newError(c, err, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrMailDispatch):
		return newError(c, err, http.StatusInternalServerError, "unable to send reset code")
	}
	return newError(c, err, http.StatusInternalServerError, fallback)
}
