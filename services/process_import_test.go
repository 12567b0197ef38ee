package services

import (
	"bytes"
	"process_flow_go/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func buildImportWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", importSheetProcesses)
	for i, header := range processImportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(importSheetProcesses, cell, header)
	}
	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(importSheetProcesses, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)
	return buf
}

func TestGenerateProcessTemplate(t *testing.T) {
	buf, err := GenerateProcessTemplate()
	assert.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), importSheetInstructions)
	assert.Contains(t, f.GetSheetList(), importSheetProcesses)

	rows, err := f.GetRows(importSheetProcesses)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, len(rows), 2)
	assert.Equal(t, "Case Number*", rows[0][0])
}

func TestImportProcessesFromExcel_TemplateRoundTrip(t *testing.T) {
	database := setupTestDB(t)

	// The example row shipped with the template must import cleanly
	buf, err := GenerateProcessTemplate()
	assert.NoError(t, err)

	result, err := ImportProcessesFromExcel(database, bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
	assert.Equal(t, 1, result.TotalProcessed)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 0, result.FailedCount)

	process, err := FindProcessByCaseNumber(database, "1234567-89.2024.8.26.0001")
	assert.NoError(t, err)
	assert.NotNil(t, process)
	assert.Equal(t, models.ProcessAreaCivil, process.Area)
}

func TestImportProcessesFromExcel_RowErrors(t *testing.T) {
	database := setupTestDB(t)
	createTestProcess(t, database, "0020202-02.2024.8.26.0100")

	buf := buildImportWorkbook(t, [][]string{
		// valid
		{"0030303-03.2024.8.26.0100", "TJSP", models.ProcessAreaCivil, "", "Maria", models.PartyTypeIndividual, "Empresa", models.PartyTypeCompany, "", ""},
		// duplicate case number
		{"0020202-02.2024.8.26.0100", "TJSP", models.ProcessAreaCivil, "", "Maria", models.PartyTypeIndividual, "Empresa", models.PartyTypeCompany, "", ""},
		// missing court
		{"0040404-04.2024.8.26.0100", "", models.ProcessAreaCivil, "", "Maria", models.PartyTypeIndividual, "Empresa", models.PartyTypeCompany, "", ""},
		// invalid area
		{"0050505-05.2024.8.26.0100", "TJSP", "maritime", "", "Maria", models.PartyTypeIndividual, "Empresa", models.PartyTypeCompany, "", ""},
		// blank rows are skipped entirely
		{"", "", "", "", "", "", "", "", "", ""},
	})

	result, err := ImportProcessesFromExcel(database, bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
	assert.Equal(t, 4, result.TotalProcessed)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 3, result.FailedCount)
	assert.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "already exists")

	// One failing row does not block the rest
	imported, err := FindProcessByCaseNumber(database, "0030303-03.2024.8.26.0100")
	assert.NoError(t, err)
	assert.NotNil(t, imported)
}

func TestImportProcessesFromExcel_MissingSheet(t *testing.T) {
	database := setupTestDB(t)

	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)
	f.Close()

	_, err = ImportProcessesFromExcel(database, bytes.NewReader(buf.Bytes()))
	assert.Error(t, err)
}
