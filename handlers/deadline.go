package handlers

import (
	"net/http"
	"process_flow_go/db"
	"process_flow_go/middleware"
	"process_flow_go/models"
	"process_flow_go/services"
	"strings"

	"github.com/labstack/echo/v4"
)

// CreateDeadlineHandler registers a new deadline
func CreateDeadlineHandler(c echo.Context) error {
	var input services.CreateDeadlineInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if strings.TrimSpace(input.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Title is required")
	}
	if !models.IsValidDeadlineType(input.Type) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid deadline type")
	}
	if input.PriorityLevel != nil && !models.IsValidPriorityLevel(*input.PriorityLevel) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid priority level")
	}

	deadline, err := services.CreateDeadline(db.DB, input)
	if err != nil {
		return respondError(c, err)
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c),
		models.AuditActionCreate, "Deadline", deadline.ID, deadline.Title,
		"Deadline created", nil, deadline)

	return c.JSON(http.StatusCreated, deadline)
}

// GetDeadlinesHandler returns all deadlines, optionally filtered by process
func GetDeadlinesHandler(c echo.Context) error {
	if processID := c.QueryParam("process_id"); processID != "" {
		deadlines, err := services.FindDeadlinesByProcess(db.DB, processID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, deadlines)
	}

	deadlines, err := services.ListDeadlines(db.DB)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, deadlines)
}

// GetDeadlineHandler returns one deadline by id
func GetDeadlineHandler(c echo.Context) error {
	deadline, err := services.FindDeadlineByID(db.DB, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if deadline == nil {
		return c.JSON(http.StatusNotFound, services.ErrResourceNotFound)
	}
	return c.JSON(http.StatusOK, deadline)
}

// UpdateDeadlineHandler applies a partial patch to a deadline. A patch
// against a missing deadline is a no-op.
func UpdateDeadlineHandler(c echo.Context) error {
	var patch services.DeadlinePatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := patch.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	deadline, err := services.UpdateDeadline(db.DB, c.Param("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	if deadline == nil {
		return c.NoContent(http.StatusNoContent)
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c),
		models.AuditActionUpdate, "Deadline", deadline.ID, deadline.Title,
		"Deadline updated", nil, deadline)

	return c.JSON(http.StatusOK, deadline)
}

// DeleteDeadlineHandler removes a deadline. Removal is idempotent.
func DeleteDeadlineHandler(c echo.Context) error {
	id := c.Param("id")

	if err := services.RemoveDeadline(db.DB, id); err != nil {
		return respondError(c, err)
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c),
		models.AuditActionDelete, "Deadline", id, "",
		"Deadline removed", nil, nil)

	return c.NoContent(http.StatusNoContent)
}
