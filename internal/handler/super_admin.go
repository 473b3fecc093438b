package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/haatos/simple-lms/internal/service"
	"github.com/haatos/simple-lms/internal/store"
	"github.com/labstack/echo/v4"
)

type SuperAdminAuthenticator interface {
	Authenticate(string, string) error
}

type SuperAdminSessionServicer interface {
	SessionServicer
	SetSuperAdmin(context.Context, *store.AuthSession, bool) error
}

type UserAdminServicer interface {
	ListUsers(context.Context) ([]*store.User, error)
	UpdateUserRole(context.Context, int64, string) error
}

func SetupSuperAdminRoutes(
	g *echo.Group,
	superAdmin SuperAdminAuthenticator,
	sessionService SuperAdminSessionServicer,
	userService UserAdminServicer,
	cookieService AuthCookieServicer,
) {
	h := NewSuperAdminHandler(superAdmin, sessionService, userService, cookieService)
	g.POST("/login", h.PostLogin)
	g.POST("/logout", h.PostLogout)
	g.GET("/dashboard", h.GetDashboard, RequireSuperAdmin)
	g.GET("/users", h.GetUsers, RequireSuperAdmin)
	g.PATCH("/users/:user_id/role", h.PatchUserRole, RequireSuperAdmin)
}

type SuperAdminHandler struct {
	superAdmin     SuperAdminAuthenticator
	sessionService SuperAdminSessionServicer
	userService    UserAdminServicer
	cookieService  AuthCookieServicer
}

func NewSuperAdminHandler(
	superAdmin SuperAdminAuthenticator,
	sessionService SuperAdminSessionServicer,
	userService UserAdminServicer,
	cookieService AuthCookieServicer,
) *SuperAdminHandler {
	return &SuperAdminHandler{superAdmin, sessionService, userService, cookieService}
}

// PostLogin flags the current session as super admin, starting a new
// session when there is none.
func (h *SuperAdminHandler) PostLogin(c echo.Context) error {
	lp := new(SuperAdminLoginParams)
	if err := c.Bind(lp); err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid login data")
	}
	if err := h.superAdmin.Authenticate(lp.Username, lp.Password); err != nil {
		return serviceError(c, err, "unable to log in")
	}

	ctx := c.Request().Context()
	as := getCtxSession(c)
	if as != nil {
		if err := h.sessionService.SetSuperAdmin(ctx, as, true); err == nil {
			return c.JSON(http.StatusOK, messageResponse{Message: "Super Admin login successful!"})
		}
	}

	as, err := h.sessionService.StartSession(ctx, as, service.SessionAttrs{SuperAdmin: true})
	if err != nil {
		return newError(c, err, http.StatusInternalServerError, "unable to create session")
	}
	if err := h.cookieService.SetSessionCookie(c, as.AuthSessionID, as.AuthSessionExpires); err != nil {
		return newError(c, err, http.StatusInternalServerError, "unable to set session cookie")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Super Admin login successful!"})
}

// PostLogout drops the super admin flag. A session that belongs to no user
// is ended altogether.
func (h *SuperAdminHandler) PostLogout(c echo.Context) error {
	ctx := c.Request().Context()
	as := getCtxSession(c)
	switch {
	case as == nil:
	case !as.HasUser():
		if err := h.sessionService.EndSession(ctx, as); err != nil {
			return newError(c, err, http.StatusInternalServerError, "unable to end session")
		}
		h.cookieService.RemoveSessionCookie(c)
	case as.IsSuperAdmin():
		if err := h.sessionService.SetSuperAdmin(ctx, as, false); err != nil {
			return serviceError(c, err, "unable to end session")
		}
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Super Admin logged out successfully!"})
}

func (h *SuperAdminHandler) GetDashboard(c echo.Context) error {
	as := getCtxSession(c)
	return c.JSON(http.StatusOK, map[string]any{
		"message":         "Welcome to the Super Admin dashboard",
		"session_expires": as.AuthSessionExpires.Format(time.RFC3339),
	})
}

func (h *SuperAdminHandler) GetUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return serviceError(c, err, "unable to list users")
	}
	res := make([]userResponse, 0, len(users))
	for _, u := range users {
		res = append(res, newUserResponse(u))
	}
	return c.JSON(http.StatusOK, map[string]any{"users": res})
}

func (h *SuperAdminHandler) PatchUserRole(c echo.Context) error {
	rp := new(PatchUserRoleParams)
	if err := c.Bind(rp); err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid role data")
	}
	if err := h.userService.UpdateUserRole(c.Request().Context(), rp.UserID, rp.Role); err != nil {
		return serviceError(c, err, "unable to update role")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User role updated successfully"})
}
