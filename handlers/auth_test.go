package handlers

import (
	"encoding/json"
	"net/http"
	"process_flow_go/middleware"
	"process_flow_go/models"
	"process_flow_go/services"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestLoginHandler(t *testing.T) {
	database := setupTestDB(t)
	createTestUser(t, database, models.RoleLawyer)

	t.Run("Valid credentials", func(t *testing.T) {
		body := `{"email": "lawyer@test.com", "password": "pass123456789"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/login", strings.NewReader(body))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		err := LoginHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		// Session cookie is set
		cookies := rec.Result().Cookies()
		var found bool
		for _, cookie := range cookies {
			if cookie.Name == middleware.SessionCookieName && cookie.Value != "" {
				found = true
			}
		}
		assert.True(t, found)

		// The password hash never leaves the server
		assert.NotContains(t, rec.Body.String(), "$2a$")

		var user models.User
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
		assert.Equal(t, "lawyer@test.com", user.Email)
	})

	t.Run("Email is case-insensitive", func(t *testing.T) {
		body := `{"email": "LAWYER@test.com", "password": "pass123456789"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/login", strings.NewReader(body))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		err := LoginHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Wrong password", func(t *testing.T) {
		body := `{"email": "lawyer@test.com", "password": "wrong"}`
		_, c, _ := setupEcho(http.MethodPost, "/api/login", strings.NewReader(body))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		err := LoginHandler(c)
		assert.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("Unknown email", func(t *testing.T) {
		body := `{"email": "nobody@test.com", "password": "pass123456789"}`
		_, c, _ := setupEcho(http.MethodPost, "/api/login", strings.NewReader(body))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		err := LoginHandler(c)
		assert.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("Deactivated account", func(t *testing.T) {
		user := createTestUser(t, database, models.RoleStaff)
		assert.NoError(t, database.Model(user).Update("is_active", false).Error)

		body := `{"email": "staff@test.com", "password": "pass123456789"}`
		_, c, _ := setupEcho(http.MethodPost, "/api/login", strings.NewReader(body))
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		err := LoginHandler(c)
		assert.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}

func TestLogoutHandler(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, models.RoleLawyer)

	t.Run("Deletes the session from the request context", func(t *testing.T) {
		session, err := services.CreateSession(database, user.ID, "127.0.0.1", "test-agent")
		assert.NoError(t, err)

		_, c, rec := setupEcho(http.MethodPost, "/api/logout", nil)
		authenticate(c, user)
		c.Set(middleware.ContextKeySession, session)

		err = LogoutHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		_, err = services.ValidateSession(database, session.Token)
		assert.Error(t, err)
	})

	t.Run("Falls back to the cookie token", func(t *testing.T) {
		session, err := services.CreateSession(database, user.ID, "127.0.0.1", "test-agent")
		assert.NoError(t, err)

		_, c, rec := setupEcho(http.MethodPost, "/api/logout", nil)
		c.Request().AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: session.Token})
		authenticate(c, user)

		err = LogoutHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		_, err = services.ValidateSession(database, session.Token)
		assert.Error(t, err)
	})
}

func TestGetCurrentUserHandler(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, models.RoleAdmin)

	t.Run("Authenticated", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/me", nil)
		authenticate(c, user)

		err := GetCurrentUserHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), user.Email)
	})

	t.Run("Not authenticated", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/me", nil)

		err := GetCurrentUserHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "NOT_AUTHENTICATED")
	})
}
