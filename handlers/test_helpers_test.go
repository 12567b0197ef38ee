package handlers

import (
	"io"
	"net/http/httptest"
	"process_flow_go/config"
	"process_flow_go/db"
	"process_flow_go/middleware"
	"process_flow_go/models"
	"process_flow_go/services"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared memory name isolates tests while letting the async audit
	// writer reach the same database
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.AuditLog{},
		&models.Process{},
		&models.Deadline{},
	)
	assert.NoError(t, err)

	err = db.EnsureIndexes(testDB)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment: "test",
	})

	return e, c, rec
}

// authenticate places a user on the context the way RequireAuth would
func authenticate(c echo.Context, user *models.User) {
	c.Set(middleware.ContextKeyUser, user)
	c.Set(middleware.ContextKeyAuditContext, services.AuditContext{
		UserID:    user.ID,
		UserName:  user.Name,
		UserRole:  user.Role,
		IPAddress: "127.0.0.1",
		UserAgent: "test-agent",
	})
}

func createTestUser(t *testing.T, database *gorm.DB, role string) *models.User {
	hashed, err := services.HashPassword("pass123456789")
	assert.NoError(t, err)

	user := &models.User{
		Name:     "Test " + role,
		Email:    role + "@test.com",
		Password: hashed,
		Role:     role,
		IsActive: true,
	}
	assert.NoError(t, database.Create(user).Error)
	return user
}

func createTestProcess(t *testing.T, database *gorm.DB, caseNumber string) *models.Process {
	process, err := services.CreateProcess(database, services.CreateProcessInput{
		CaseNumber: caseNumber,
		Court:      "TJSP - 1ª Vara Cível",
		Area:       models.ProcessAreaCivil,
		Parties: models.Parties{
			Plaintiff: models.Party{Name: "Maria da Silva", Type: models.PartyTypeIndividual},
			Defendant: models.Party{Name: "Empresa XYZ Ltda", Type: models.PartyTypeCompany},
		},
	})
	assert.NoError(t, err)
	return process
}

func stringToPtr(s string) *string {
	return &s
}
