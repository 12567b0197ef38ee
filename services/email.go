package services

import (
	"fmt"
	"log"
	"process_flow_go/config"
	"strings"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	TextBody string
}

// SendEmail sends an email using the Resend API. In test mode the email is
// logged to the console instead of sent.
func SendEmail(cfg *config.Config, email *Email) error {
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}
	if email.TextBody == "" {
		return fmt.Errorf("email must have a body")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Text:    email.TextBody,
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in test mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (test mode - not actually sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n%s\n%s", email.TextBody, separator)
}

// DeadlineReminderEmailData contains data for the deadline reminder email
type DeadlineReminderEmailData struct {
	AssigneeName string
	Title        string
	Type         string
	Priority     string
	DueDate      string
	CaseNumber   string
}

// BuildDeadlineReminderEmail creates a reminder email for an upcoming deadline
func BuildDeadlineReminderEmail(toEmail string, data DeadlineReminderEmailData) *Email {
	var body strings.Builder
	fmt.Fprintf(&body, "Olá %s,\n\n", data.AssigneeName)
	fmt.Fprintf(&body, "O prazo abaixo vence em %s:\n\n", data.DueDate)
	fmt.Fprintf(&body, "  Título: %s\n", data.Title)
	fmt.Fprintf(&body, "  Tipo: %s\n", data.Type)
	fmt.Fprintf(&body, "  Prioridade: %s\n", data.Priority)
	if data.CaseNumber != "" {
		fmt.Fprintf(&body, "  Processo: %s\n", data.CaseNumber)
	}
	body.WriteString("\nProcess Flow\n")

	return &Email{
		To:       []string{toEmail},
		Subject:  fmt.Sprintf("Lembrete de prazo: %s", data.Title),
		TextBody: body.String(),
	}
}
