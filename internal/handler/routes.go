package handler

import (
	"github.com/haatos/simple-lms/internal/storage"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Dependencies holds the services the HTTP routes are built from.
type Dependencies struct {
	Users interface {
		UserAuthServicer
		UserAdminServicer
	}
	Sessions interface {
		SuperAdminSessionServicer
		SessionReader
	}
	ResetCodes ResetCodeServicer
	SuperAdmin SuperAdminAuthenticator
	Teachers   TeacherServicer
	Courses    CourseServicer
	Cookies    interface {
		AuthCookieServicer
		SessionCookieReader
	}
	Files   storage.Storage
	Pingers map[string]Pinger
	Logger  *zap.Logger
}

func SetupRoutes(e *echo.Echo, d Dependencies) {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	e.Use(SessionMiddleware(d.Sessions, d.Cookies))

	api := e.Group("/api")
	SetupHealthRoutes(api, d.Pingers, d.Logger)
	SetupAuthRoutes(api, d.Users, d.Sessions, d.ResetCodes, d.Cookies)
	SetupSuperAdminRoutes(api.Group("/super-admin"), d.SuperAdmin, d.Sessions, d.Users, d.Cookies)
	SetupTeacherRoutes(api.Group("/teachers"), d.Teachers)
	SetupCourseRoutes(api.Group("/courses"), d.Courses)
	SetupUploadRoutes(e, d.Files)
}
