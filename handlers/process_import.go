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

const maxImportFileSize = 10 << 20 // 10 MB

// ImportProcessesHandler handles bulk process import from an Excel workbook
func ImportProcessesHandler(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file uploaded")
	}

	if fileHeader.Size > maxImportFileSize {
		return echo.NewHTTPError(http.StatusBadRequest, "File exceeds the 10 MB limit")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
		return echo.NewHTTPError(http.StatusBadRequest, "Only .xlsx files are supported")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer file.Close()

	result, err := services.ImportProcessesFromExcel(db.DB, file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c),
		models.AuditActionImport, "Process", "", fileHeader.Filename,
		fmt.Sprintf("Imported %d of %d processes (%d failed)",
			result.SuccessCount, result.TotalProcessed, result.FailedCount),
		nil, result)

	return c.JSON(http.StatusOK, result)
}

// DownloadImportTemplateHandler serves the Excel template for bulk import
func DownloadImportTemplateHandler(c echo.Context) error {
	buf, err := services.GenerateProcessTemplate()
	if err != nil {
		return respondError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="process_import_template.xlsx"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
