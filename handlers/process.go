package handlers

import (
	"fmt"
	"net/http"
	"process_flow_go/db"
	"process_flow_go/middleware"
	"process_flow_go/models"
	"process_flow_go/services"
	"strings"

	"github.com/labstack/echo/v4"
)

// CreateProcessHandler registers a new process
func CreateProcessHandler(c echo.Context) error {
	var input services.CreateProcessInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if strings.TrimSpace(input.CaseNumber) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Case number is required")
	}
	if strings.TrimSpace(input.Court) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Court is required")
	}
	if !models.IsValidProcessArea(input.Area) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid area")
	}
	if input.Status != nil && !models.IsValidProcessStatus(*input.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid status")
	}
	if err := services.ValidateParties(input.Parties); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	process, err := services.CreateProcess(db.DB, input)
	if err != nil {
		return respondError(c, err)
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c),
		models.AuditActionCreate, "Process", process.ID, process.CaseNumber,
		"Process created", nil, process)

	return c.JSON(http.StatusCreated, process)
}

// GetProcessesHandler returns all non-deleted processes
func GetProcessesHandler(c echo.Context) error {
	processes, err := services.ListProcesses(db.DB)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, processes)
}

// GetProcessHandler returns one process by id
func GetProcessHandler(c echo.Context) error {
	process, err := services.FindProcessByID(db.DB, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if process == nil {
		return c.JSON(http.StatusNotFound, services.ErrResourceNotFound)
	}
	return c.JSON(http.StatusOK, process)
}

// LookupProcessHandler returns one process by case number
func LookupProcessHandler(c echo.Context) error {
	caseNumber := strings.TrimSpace(c.QueryParam("case_number"))
	if caseNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "case_number query parameter is required")
	}

	process, err := services.FindProcessByCaseNumber(db.DB, caseNumber)
	if err != nil {
		return respondError(c, err)
	}
	if process == nil {
		return c.JSON(http.StatusNotFound, services.ErrResourceNotFound)
	}
	return c.JSON(http.StatusOK, process)
}

// GetDeletedProcessesHandler returns the soft-deleted processes (admin only)
func GetDeletedProcessesHandler(c echo.Context) error {
	processes, err := services.ListDeletedProcesses(db.DB, middleware.GetCurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, processes)
}

// UpdateProcessHandler applies a partial patch to a process
func UpdateProcessHandler(c echo.Context) error {
	var patch services.ProcessPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := patch.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id := c.Param("id")
	before, err := services.FindProcessByID(db.DB, id)
	if err != nil {
		return respondError(c, err)
	}

	process, err := services.UpdateProcess(db.DB, id, patch)
	if err != nil {
		return respondError(c, err)
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c),
		models.AuditActionUpdate, "Process", process.ID, process.CaseNumber,
		"Process updated", before, process)

	return c.JSON(http.StatusOK, process)
}

// DeleteProcessHandler soft-deletes a process. Related deadlines are left
// untouched.
func DeleteProcessHandler(c echo.Context) error {
	id := c.Param("id")
	user := middleware.GetCurrentUser(c)

	related, err := services.SoftDeleteProcess(db.DB, id, user)
	if err != nil {
		return respondError(c, err)
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c),
		models.AuditActionSoftDelete, "Process", id, "",
		fmt.Sprintf("Process soft-deleted; %d related deadlines kept untouched", related), nil, nil)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"deleted":           true,
		"related_deadlines": related,
	})
}

// GetProcessAuditHistoryHandler returns the audit trail of a process (admin only)
func GetProcessAuditHistoryHandler(c echo.Context) error {
	logs, err := services.GetResourceAuditHistory(db.DB, "Process", c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}
