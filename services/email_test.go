package services

import (
	"process_flow_go/config"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendEmail_TestMode(t *testing.T) {
	cfg := &config.Config{EmailTestMode: true}

	err := SendEmail(cfg, &Email{
		To:       []string{"souza@test.com"},
		Subject:  "Lembrete",
		TextBody: "corpo",
	})
	assert.NoError(t, err)
}

func TestSendEmail_RequiresAPIKey(t *testing.T) {
	cfg := &config.Config{EmailTestMode: false, ResendAPIKey: ""}

	err := SendEmail(cfg, &Email{To: []string{"souza@test.com"}, Subject: "x", TextBody: "y"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY")
}

func TestBuildDeadlineReminderEmail(t *testing.T) {
	email := BuildDeadlineReminderEmail("souza@test.com", DeadlineReminderEmailData{
		AssigneeName: "Dr. Souza",
		Title:        "Apresentar contestação",
		Type:         "Contestação",
		Priority:     "high",
		DueDate:      "01/09/2026 14:00",
		CaseNumber:   "1234567-89.2024.8.26.0001",
	})

	assert.Equal(t, []string{"souza@test.com"}, email.To)
	assert.Contains(t, email.Subject, "Apresentar contestação")
	assert.Contains(t, email.TextBody, "Dr. Souza")
	assert.Contains(t, email.TextBody, "1234567-89.2024.8.26.0001")
	assert.Contains(t, email.TextBody, "01/09/2026 14:00")
}
