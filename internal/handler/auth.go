package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/haatos/simple-lms/internal/service"
	"github.com/haatos/simple-lms/internal/store"
	"github.com/labstack/echo/v4"
)

type UserAuthServicer interface {
	Register(context.Context, service.RegisterParams) (*store.User, error)
	Login(context.Context, string, string, service.LoginMeta) (*store.User, error)
	GetUserByID(context.Context, int64) (*store.User, error)
	ChangePassword(context.Context, int64, string, string) error
	ListLoginHistory(context.Context, int64, int) ([]*store.LoginAttempt, error)
}

type SessionServicer interface {
	StartSession(context.Context, *store.AuthSession, service.SessionAttrs) (*store.AuthSession, error)
	EndSession(context.Context, *store.AuthSession) error
}

type ResetCodeServicer interface {
	IssueResetCode(context.Context, string) error
	ResetPassword(context.Context, string, string, string) error
}

type AuthCookieServicer interface {
	SetSessionCookie(echo.Context, string, time.Time) error
	RemoveSessionCookie(echo.Context)
}

type userResponse struct {
	*store.User
	ImageURL string `json:"image_url,omitempty"`
}

func newUserResponse(u *store.User) userResponse {
	return userResponse{User: u, ImageURL: uploadURL(u.ImageFilename)}
}

type userMessageResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

func SetupAuthRoutes(
	g *echo.Group,
	userService UserAuthServicer,
	sessionService SessionServicer,
	resetCodeService ResetCodeServicer,
	cookieService AuthCookieServicer,
) {
	h := NewAuthHandler(userService, sessionService, resetCodeService, cookieService)
	g.POST("/register", h.PostRegister)
	g.POST("/signup", h.PostRegister)
	g.POST("/login", h.PostLogin)
	g.POST("/logout", h.PostLogout)
	g.POST("/forgot-password", h.PostForgotPassword)
	g.POST("/reset-password", h.PostResetPassword)
	g.GET("/user", h.GetUser, RequireUser)
	g.GET("/user/login-history", h.GetLoginHistory, RequireUser)
	g.POST("/change-password", h.PostChangePassword, RequireUser)
}

type AuthHandler struct {
	userService      UserAuthServicer
	sessionService   SessionServicer
	resetCodeService ResetCodeServicer
	cookieService    AuthCookieServicer
}

func NewAuthHandler(
	userService UserAuthServicer,
	sessionService SessionServicer,
	resetCodeService ResetCodeServicer,
	cookieService AuthCookieServicer,
) *AuthHandler {
	return &AuthHandler{userService, sessionService, resetCodeService, cookieService}
}

func (h *AuthHandler) PostRegister(c echo.Context) error {
	rp := new(RegisterParams)
	if err := c.Bind(rp); err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid user data")
	}

	image, closeImage, err := formUpload(c, "image")
	if err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid image")
	}
	defer closeImage()

	u, err := h.userService.Register(c.Request().Context(), service.RegisterParams{
		Username: rp.Username,
		Email:    rp.Email,
		Password: rp.Password,
		Profile: store.UserProfile{
			FullName:       strings.TrimSpace(rp.FullName),
			Initials:       strings.TrimSpace(rp.Initials),
			ContactNumber:  strings.TrimSpace(rp.ContactNumber),
			Address:        strings.TrimSpace(rp.Address),
			GuardianName:   strings.TrimSpace(rp.GuardianName),
			GuardianNumber: strings.TrimSpace(rp.GuardianNumber),
		},
		Image: image,
	})
	if err != nil {
		return serviceError(c, err, "unable to register user")
	}

	return c.JSON(http.StatusCreated, userMessageResponse{
		Message: "User registered successfully",
		User:    newUserResponse(u),
	})
}

func (h *AuthHandler) PostLogin(c echo.Context) error {
	lp := new(LoginParams)
	if err := c.Bind(lp); err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid login data")
	}

	u, err := h.userService.Login(
		c.Request().Context(),
		lp.identifier(),
		lp.Password,
		service.LoginMeta{
			IPAddress: c.RealIP(),
			UserAgent: c.Request().UserAgent(),
		},
	)
	if err != nil {
		return serviceError(c, err, "unable to log in")
	}

	// a fresh session id is issued on every login
	prior := getCtxSession(c)
	as, err := h.sessionService.StartSession(
		c.Request().Context(),
		prior,
		service.SessionAttrs{
			UserID:     &u.UserID,
			Role:       u.Role,
			SuperAdmin: prior.IsSuperAdmin(),
		},
	)
	if err != nil {
		return newError(c, err, http.StatusInternalServerError, "unable to create session")
	}

	if err := h.cookieService.SetSessionCookie(c, as.AuthSessionID, as.AuthSessionExpires); err != nil {
		return newError(c, err, http.StatusInternalServerError, "unable to set session cookie")
	}

	return c.JSON(http.StatusOK, userMessageResponse{
		Message: "Login successful",
		User:    newUserResponse(u),
	})
}

func (h *AuthHandler) PostLogout(c echo.Context) error {
	if err := h.sessionService.EndSession(c.Request().Context(), getCtxSession(c)); err != nil {
		return newError(c, err, http.StatusInternalServerError, "unable to end session")
	}
	h.cookieService.RemoveSessionCookie(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) GetUser(c echo.Context) error {
	as := getCtxSession(c)
	u, err := h.userService.GetUserByID(c.Request().Context(), *as.AuthSessionUserID)
	if err != nil {
		return serviceError(c, err, "unable to read user")
	}
	return c.JSON(http.StatusOK, userMessageResponse{
		Message: "Current user",
		User:    newUserResponse(u),
	})
}

func (h *AuthHandler) GetLoginHistory(c echo.Context) error {
	lp := new(LoginHistoryParams)
	if err := c.Bind(lp); err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid limit")
	}
	as := getCtxSession(c)
	history, err := h.userService.ListLoginHistory(
		c.Request().Context(), *as.AuthSessionUserID, lp.Limit,
	)
	if err != nil {
		return serviceError(c, err, "unable to read login history")
	}
	if history == nil {
		history = []*store.LoginAttempt{}
	}
	return c.JSON(http.StatusOK, map[string]any{"login_history": history})
}

func (h *AuthHandler) PostChangePassword(c echo.Context) error {
	cp := new(ChangePasswordParams)
	if err := c.Bind(cp); err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid password data")
	}
	as := getCtxSession(c)
	if err := h.userService.ChangePassword(
		c.Request().Context(),
		*as.AuthSessionUserID,
		cp.CurrentPassword,
		cp.NewPassword,
	); err != nil {
		return serviceError(c, err, "unable to change password")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Password changed successfully"})
}

func (h *AuthHandler) PostForgotPassword(c echo.Context) error {
	fp := new(ForgotPasswordParams)
	if err := c.Bind(fp); err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid email")
	}
	if err := h.resetCodeService.IssueResetCode(c.Request().Context(), fp.Email); err != nil {
		return serviceError(c, err, "unable to send reset code")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Reset code sent to email"})
}

func (h *AuthHandler) PostResetPassword(c echo.Context) error {
	rp := new(ResetPasswordParams)
	if err := c.Bind(rp); err != nil {
		return newError(c, err, http.StatusBadRequest, "invalid reset data")
	}
	if err := h.resetCodeService.ResetPassword(
		c.Request().Context(),
		rp.Email,
		rp.code(),
		rp.NewPassword,
	); err != nil {
		return serviceError(c, err, "unable to reset password")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Password reset successfully"})
}
