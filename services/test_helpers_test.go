package services

import (
	"process_flow_go/db"
	"process_flow_go/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB initializes an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
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

	return testDB
}

func createTestUser(t *testing.T, database *gorm.DB, role string) *models.User {
	hashed, err := HashPassword("pass123456789")
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

func testParties() models.Parties {
	return models.Parties{
		Plaintiff: models.Party{Name: "Maria da Silva", Type: models.PartyTypeIndividual},
		Defendant: models.Party{Name: "Empresa XYZ Ltda", Type: models.PartyTypeCompany},
	}
}

func stringToPtr(s string) *string {
	return &s
}
