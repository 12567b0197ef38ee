package services

import (
	"process_flow_go/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	assert.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword("correct horse battery staple", hash))
	assert.False(t, CheckPassword("wrong password", hash))
}

func TestGenerateSessionToken(t *testing.T) {
	token1, err := GenerateSessionToken()
	assert.NoError(t, err)
	token2, err := GenerateSessionToken()
	assert.NoError(t, err)

	assert.NotEmpty(t, token1)
	assert.NotEqual(t, token1, token2)
}

func TestCreateAndValidateSession(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, models.RoleLawyer)

	session, err := CreateSession(database, user.ID, "127.0.0.1", "test-agent")
	assert.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	validated, err := ValidateSession(database, session.Token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, validated.UserID)
	assert.Equal(t, user.Email, validated.User.Email)
}

func TestValidateSession_InvalidToken(t *testing.T) {
	database := setupTestDB(t)

	_, err := ValidateSession(database, "not-a-real-token")
	assert.Error(t, err)
}

func TestValidateSession_Expired(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, models.RoleStaff)

	// No explicit ID: the uuid hook must fill it so the row stays deletable
	session := &models.Session{
		UserID:    user.ID,
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-1 * time.Hour),
	}
	assert.NoError(t, database.Create(session).Error)
	assert.NotEmpty(t, session.ID)

	_, err := ValidateSession(database, "expired-token")
	assert.Error(t, err)

	// An expired session is removed on validation
	var count int64
	database.Model(&models.Session{}).Where("token = ?", "expired-token").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestValidateSession_ExpiredRowWithoutID(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, models.RoleStaff)

	// A row with an empty primary key must still be cleanable: removal goes
	// through the token, never the id
	err := database.Exec(
		"INSERT INTO sessions (id, user_id, token, expires_at) VALUES ('', ?, 'legacy-token', ?)",
		user.ID, time.Now().Add(-1*time.Hour),
	).Error
	assert.NoError(t, err)

	_, err = ValidateSession(database, "legacy-token")
	assert.Error(t, err)

	var count int64
	database.Model(&models.Session{}).Where("token = ?", "legacy-token").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteSession(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, models.RoleAdmin)

	session, err := CreateSession(database, user.ID, "127.0.0.1", "test-agent")
	assert.NoError(t, err)

	assert.NoError(t, DeleteSession(database, session.Token))

	_, err = ValidateSession(database, session.Token)
	assert.Error(t, err)
}

func TestCleanupExpiredSessions(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, models.RoleAdmin)

	live, err := CreateSession(database, user.ID, "127.0.0.1", "test-agent")
	assert.NoError(t, err)
	assert.NoError(t, database.Create(&models.Session{
		UserID:    user.ID,
		Token:     "stale-token",
		ExpiresAt: time.Now().Add(-1 * time.Minute),
	}).Error)

	assert.NoError(t, CleanupExpiredSessions(database))

	var tokens []string
	database.Model(&models.Session{}).Pluck("token", &tokens)
	assert.Equal(t, []string{live.Token}, tokens)
}
