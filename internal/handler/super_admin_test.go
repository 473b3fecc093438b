package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginSuperAdmin(t *testing.T, tc *testClient) {
	t.Helper()
	rec := tc.doJSON(http.MethodPost, "/api/super-admin/login", map[string]string{
		"username": testSuperAdminUsername,
		"password": testSuperAdminPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestSuperAdminHandler_LoginLogout(t *testing.T) {
	t.Run("success - anonymous login starts a super admin session", func(t *testing.T) {
		// arrange
		app := newTestApp(t)
		tc := app.client(t)

		// act
		loginSuperAdmin(t, tc)
		dashboard := tc.doJSON(http.MethodGet, "/api/super-admin/dashboard", nil)
		user := tc.doJSON(http.MethodGet, "/api/user", nil)
		logout := tc.doJSON(http.MethodPost, "/api/super-admin/logout", nil)
		after := tc.doJSON(http.MethodGet, "/api/super-admin/dashboard", nil)

		// assert
		assert.Equal(t, http.StatusOK, dashboard.Code)
		assert.Equal(t, http.StatusUnauthorized, user.Code)
		assert.Equal(t, "Super Admin logged out successfully!", decode(t, logout)["message"])
		assert.Equal(t, http.StatusUnauthorized, after.Code)
		assert.Empty(t, tc.cookies)
	})
	t.Run("success - flag is added to and removed from a user session", func(t *testing.T) {
		// arrange
		app := newTestApp(t)
		tc := app.client(t)
		registerAlice(t, tc)
		tc.doJSON(http.MethodPost, "/api/login", map[string]string{"identifier": "alice", "password": "pw123!"})
		userCookie := tc.cookies["session"].Value

		// act
		loginSuperAdmin(t, tc)
		dashboard := tc.doJSON(http.MethodGet, "/api/super-admin/dashboard", nil)
		tc.doJSON(http.MethodPost, "/api/super-admin/logout", nil)
		after := tc.doJSON(http.MethodGet, "/api/super-admin/dashboard", nil)
		user := tc.doJSON(http.MethodGet, "/api/user", nil)

		// assert
		assert.Equal(t, userCookie, tc.cookies["session"].Value)
		assert.Equal(t, http.StatusOK, dashboard.Code)
		assert.Equal(t, http.StatusUnauthorized, after.Code)
		assert.Equal(t, http.StatusOK, user.Code)
	})
	t.Run("failure - invalid credentials", func(t *testing.T) {
		// arrange
		app := newTestApp(t)
		tc := app.client(t)

		// act
		rec := tc.doJSON(http.MethodPost, "/api/super-admin/login", map[string]string{
			"username": testSuperAdminUsername,
			"password": "wrong",
		})

		// assert
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, tc.cookies)
	})
	t.Run("failure - regular users are not super admins", func(t *testing.T) {
		app := newTestApp(t)
		tc := app.client(t)
		registerAlice(t, tc)
		tc.doJSON(http.MethodPost, "/api/login", map[string]string{"identifier": "alice", "password": "pw123!"})
		rec := tc.doJSON(http.MethodGet, "/api/super-admin/users", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "unauthorized", decode(t, rec)["error"])
	})
}

func TestSuperAdminHandler_Users(t *testing.T) {
	t.Run("success - list users and change a role", func(t *testing.T) {
		// arrange
		app := newTestApp(t)
		tc := app.client(t)
		registerAlice(t, tc)
		loginSuperAdmin(t, tc)
		users := decode(t, tc.doJSON(http.MethodGet, "/api/super-admin/users", nil))["users"].([]any)
		require.Len(t, users, 1)
		id := int64(users[0].(map[string]any)["id"].(float64))

		// act
		rec := tc.doJSON(http.MethodPatch, fmt.Sprintf("/api/super-admin/users/%d/role", id), map[string]string{
			"role": "teacher",
		})

		// assert
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		users = decode(t, tc.doJSON(http.MethodGet, "/api/super-admin/users", nil))["users"].([]any)
		assert.Equal(t, "teacher", users[0].(map[string]any)["role"])
	})
	t.Run("failure - unknown role and unknown user", func(t *testing.T) {
		// arrange
		app := newTestApp(t)
		tc := app.client(t)
		loginSuperAdmin(t, tc)

		// act
		badRole := tc.doJSON(http.MethodPatch, "/api/super-admin/users/1/role", map[string]string{"role": "wizard"})
		missing := tc.doJSON(http.MethodPatch, "/api/super-admin/users/999/role", map[string]string{"role": "admin"})

		// assert
		assert.Equal(t, http.StatusBadRequest, badRole.Code)
		assert.Equal(t, http.StatusNotFound, missing.Code)
	})
}
