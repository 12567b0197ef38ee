package handlers

import (
	"errors"
	"net/http"
	"process_flow_go/services"

	"github.com/labstack/echo/v4"
)

// respondError maps a service failure to an HTTP response. Business-rule
// errors carry their own status and serialize as-is; anything else is an
// internal error whose details stay out of the response.
func respondError(c echo.Context, err error) error {
	var appErr *services.AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErr.Status, appErr)
	}
	c.Logger().Error(err)
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
}
