package handlers

import (
	"net/http"
	"process_flow_go/db"
	"process_flow_go/middleware"
	"process_flow_go/models"
	"process_flow_go/services"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// dummyHash keeps password verification constant-time when the email does not
// match any user
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler authenticates a user and opens a session
func LoginHandler(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	var user models.User
	err := db.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		// Timing attack mitigation: always run a bcrypt comparison
		services.CheckPassword(req.Password, dummyHash)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	if !services.CheckPassword(req.Password, user.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	if !user.IsActive {
		return echo.NewHTTPError(http.StatusUnauthorized, "Account is deactivated")
	}

	session, err := services.CreateSession(db.DB, user.ID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return respondError(c, err)
	}

	now := time.Now()
	db.DB.Model(&user).Update("last_login_at", now)

	middleware.SetSessionCookie(c, session.Token)

	services.LogAuditEvent(db.DB, services.AuditContext{
		UserID:    user.ID,
		UserName:  user.Name,
		UserRole:  user.Role,
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}, models.AuditActionLogin, "User", user.ID, user.Email, "User logged in", nil, nil)

	return c.JSON(http.StatusOK, user)
}

// LogoutHandler closes the current session
func LogoutHandler(c echo.Context) error {
	var token string
	if session := middleware.GetCurrentSession(c); session != nil {
		token = session.Token
	} else if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		token = cookie.Value
	}

	if token != "" {
		if err := services.DeleteSession(db.DB, token); err != nil {
			return respondError(c, err)
		}
	}

	middleware.ClearSessionCookie(c)

	if user := middleware.GetCurrentUser(c); user != nil {
		services.LogAuditEvent(db.DB, middleware.GetAuditContext(c),
			models.AuditActionLogout, "User", user.ID, user.Email, "User logged out", nil, nil)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetCurrentUserHandler returns the authenticated user
func GetCurrentUserHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, services.ErrNotAuthenticated)
	}
	return c.JSON(http.StatusOK, user)
}
