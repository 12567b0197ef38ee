package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"process_flow_go/models"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ImportResult contains the summary of the import process
type ImportResult struct {
	TotalProcessed int
	SuccessCount   int
	FailedCount    int
	Errors         []string
}

const (
	importSheetInstructions = "Instructions"
	importSheetProcesses    = "Processes"
)

var processImportHeaders = []string{
	"Case Number*",
	"Court*",
	"Area*",
	"Status",
	"Plaintiff Name*",
	"Plaintiff Type*",
	"Defendant Name*",
	"Defendant Type*",
	"Client",
	"Opposing Party",
}

// GenerateProcessTemplate generates the Excel template for bulk process import
func GenerateProcessTemplate() (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", importSheetInstructions)

	f.SetCellValue(importSheetInstructions, "A1", "Process Import Template")
	f.SetCellValue(importSheetInstructions, "A3", "Considerations:")
	f.SetCellValue(importSheetInstructions, "A4", "- Columns marked with * are required.")
	f.SetCellValue(importSheetInstructions, "A5", "- Case numbers must be unique among active processes; duplicates are reported as row errors.")
	f.SetCellValue(importSheetInstructions, "A6", "- Valid areas: "+strings.Join(validAreas(), ", "))
	f.SetCellValue(importSheetInstructions, "A7", "- Valid statuses: "+strings.Join(validStatuses(), ", ")+" (leave blank for none)")
	f.SetCellValue(importSheetInstructions, "A8", "- Valid party types: individual, company, government")

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	f.SetCellStyle(importSheetInstructions, "A1", "A1", titleStyle)
	f.SetColWidth(importSheetInstructions, "A", "A", 90)

	if _, err := f.NewSheet(importSheetProcesses); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	for i, header := range processImportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(importSheetProcesses, cell, header)
		f.SetCellStyle(importSheetProcesses, cell, cell, headerStyle)
	}
	f.SetColWidth(importSheetProcesses, "A", "J", 24)

	// Example row
	example := []string{
		"1234567-89.2024.8.26.0001",
		"TJSP - 1ª Vara Cível",
		models.ProcessAreaCivil,
		models.ProcessStatusActive,
		"Maria da Silva",
		models.PartyTypeIndividual,
		"Empresa XYZ Ltda",
		models.PartyTypeCompany,
		"Maria da Silva",
		"Empresa XYZ Ltda",
	}
	for i, value := range example {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(importSheetProcesses, cell, value)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write template: %w", err)
	}
	return buf, nil
}

// ImportProcessesFromExcel reads the Processes sheet of an uploaded workbook
// and creates one process per row. Row failures (missing fields, invalid
// enums, duplicate case numbers) are collected per row and do not abort the
// rest of the import.
func ImportProcessesFromExcel(database *gorm.DB, reader io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(importSheetProcesses)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", importSheetProcesses, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", importSheetProcesses)
	}

	result := &ImportResult{}

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header

		if isBlankRow(row) {
			continue
		}
		result.TotalProcessed++

		input, err := parseProcessRow(row)
		if err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		if _, err := CreateProcess(database, *input); err != nil {
			result.FailedCount++
			if errors.Is(err, ErrResourceAlreadyExists) {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: case number %s already exists", rowNum, input.CaseNumber))
			} else {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			}
			continue
		}
		result.SuccessCount++
	}

	return result, nil
}

// parseProcessRow maps one spreadsheet row onto a create input
func parseProcessRow(row []string) (*CreateProcessInput, error) {
	caseNumber := cellAt(row, 0)
	court := cellAt(row, 1)
	area := cellAt(row, 2)
	status := cellAt(row, 3)
	plaintiffName := cellAt(row, 4)
	plaintiffType := cellAt(row, 5)
	defendantName := cellAt(row, 6)
	defendantType := cellAt(row, 7)
	client := cellAt(row, 8)
	opposingParty := cellAt(row, 9)

	if caseNumber == "" {
		return nil, errors.New("case number is required")
	}
	if court == "" {
		return nil, errors.New("court is required")
	}
	if !models.IsValidProcessArea(area) {
		return nil, fmt.Errorf("invalid area: %q", area)
	}

	input := &CreateProcessInput{
		CaseNumber: caseNumber,
		Court:      court,
		Area:       area,
		Parties: models.Parties{
			Plaintiff: models.Party{Name: plaintiffName, Type: plaintiffType},
			Defendant: models.Party{Name: defendantName, Type: defendantType},
		},
	}

	if err := ValidateParties(input.Parties); err != nil {
		return nil, err
	}

	if status != "" {
		if !models.IsValidProcessStatus(status) {
			return nil, fmt.Errorf("invalid status: %q", status)
		}
		input.Status = &status
	}
	if client != "" {
		input.Client = &client
	}
	if opposingParty != "" {
		input.OpposingParty = &opposingParty
	}

	return input, nil
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func validAreas() []string {
	return []string{
		models.ProcessAreaCivil,
		models.ProcessAreaLabor,
		models.ProcessAreaCriminal,
		models.ProcessAreaFamily,
		models.ProcessAreaTax,
		models.ProcessAreaAdministrative,
		models.ProcessAreaConstitutional,
		models.ProcessAreaInternational,
	}
}

func validStatuses() []string {
	return []string{
		models.ProcessStatusActive,
		models.ProcessStatusUndefined,
		models.ProcessStatusDismissed,
		models.ProcessStatusClosed,
		models.ProcessStatusSuspended,
		models.ProcessStatusArchived,
	}
}
