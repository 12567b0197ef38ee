package jobs

import (
	"log"
	"process_flow_go/config"
	"process_flow_go/models"
	"process_flow_go/services"
	"time"

	"gorm.io/gorm"
)

// SendDeadlineReminders finds deadlines due in the next 24-48 hours whose
// reminder has not been sent yet, emails the assignee, and marks the deadline
// as reminded
func SendDeadlineReminders(database *gorm.DB, cfg *config.Config) {
	log.Println("Starting deadline reminder job...")

	now := time.Now().UTC()
	windowStart := now.Add(24 * time.Hour)
	windowEnd := now.Add(48 * time.Hour)

	var deadlines []models.Deadline
	err := database.
		Where("due_date IS NOT NULL AND due_date >= ? AND due_date <= ?", windowStart, windowEnd).
		Where("reminder_sent_at IS NULL").
		Find(&deadlines).Error
	if err != nil {
		log.Printf("Error fetching deadlines for reminders: %v", err)
		return
	}

	log.Printf("Found %d deadlines to remind", len(deadlines))

	for _, deadline := range deadlines {
		if deadline.AssignedTo == nil || *deadline.AssignedTo == "" {
			continue
		}

		// The assignee is a free-form string; resolve it against the user
		// table by name or email and skip when nobody matches
		var assignee models.User
		err := database.
			Where("(name = ? OR email = ?) AND is_active = ?", *deadline.AssignedTo, *deadline.AssignedTo, true).
			First(&assignee).Error
		if err != nil {
			log.Printf("No active user matches assignee %q for deadline %s, skipping", *deadline.AssignedTo, deadline.ID)
			continue
		}

		caseNumber := ""
		if deadline.ProcessID != nil {
			if process, err := services.FindProcessByID(database, *deadline.ProcessID); err == nil && process != nil {
				caseNumber = process.CaseNumber
			}
		}

		email := services.BuildDeadlineReminderEmail(assignee.Email, services.DeadlineReminderEmailData{
			AssigneeName: assignee.Name,
			Title:        deadline.Title,
			Type:         deadline.Type,
			Priority:     deadline.PriorityLevel,
			DueDate:      deadline.DueDate.Format("02/01/2006 15:04"),
			CaseNumber:   caseNumber,
		})

		if err := services.SendEmail(cfg, email); err != nil {
			log.Printf("Failed to send reminder for deadline %s: %v", deadline.ID, err)
			continue
		}

		sentAt := time.Now().UTC()
		database.Model(&deadline).Update("reminder_sent_at", sentAt)
		log.Printf("Sent reminder for deadline %s to %s", deadline.ID, assignee.Email)
	}

	log.Println("Deadline reminder job completed")
}
