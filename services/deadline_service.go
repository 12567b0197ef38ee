package services

import (
	"errors"
	"fmt"
	"process_flow_go/models"
	"time"

	"gorm.io/gorm"
)

// CreateDeadlineInput holds the fields accepted when registering a deadline
type CreateDeadlineInput struct {
	Title         string     `json:"title"`
	Type          string     `json:"type"`
	PriorityLevel *string    `json:"priority_level,omitempty"`
	AssignedTo    *string    `json:"assigned_to,omitempty"`
	Infos         *string    `json:"infos,omitempty"`
	ProcessID     *string    `json:"process_id,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
}

// CreateDeadline inserts a deadline unconditionally. The priority defaults to
// medium when omitted, and the process reference is not checked against
// existence. Returns the full created document.
func CreateDeadline(database *gorm.DB, input CreateDeadlineInput) (*models.Deadline, error) {
	priority := models.PriorityLevelMedium
	if input.PriorityLevel != nil {
		priority = *input.PriorityLevel
	}

	deadline := &models.Deadline{
		Title:         SanitizeText(input.Title),
		Type:          input.Type,
		PriorityLevel: priority,
		AssignedTo:    SanitizeTextPtr(input.AssignedTo),
		Infos:         SanitizeTextPtr(input.Infos),
		ProcessID:     input.ProcessID,
		DueDate:       input.DueDate,
	}

	if err := database.Create(deadline).Error; err != nil {
		return nil, fmt.Errorf("failed to create deadline: %w", err)
	}
	return deadline, nil
}

// ListDeadlines returns all deadlines, newest first. Deadlines have no
// soft-delete concept: the listing is unfiltered.
func ListDeadlines(database *gorm.DB) ([]models.Deadline, error) {
	var deadlines []models.Deadline
	err := database.Order("created_at DESC").Find(&deadlines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list deadlines: %w", err)
	}
	return deadlines, nil
}

// FindDeadlineByID returns the deadline, or nil when absent
func FindDeadlineByID(database *gorm.DB, id string) (*models.Deadline, error) {
	var deadline models.Deadline
	err := database.First(&deadline, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deadline: %w", err)
	}
	return &deadline, nil
}

// FindDeadlinesByProcess returns every deadline referencing the given process
func FindDeadlinesByProcess(database *gorm.DB, processID string) ([]models.Deadline, error) {
	var deadlines []models.Deadline
	err := database.Where("process_id = ?", processID).Order("created_at DESC").Find(&deadlines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list deadlines for process: %w", err)
	}
	return deadlines, nil
}

// DeadlinePatch is a partial update over a deadline. The assignee, infos,
// process reference and due date may be cleared with an explicit null.
type DeadlinePatch struct {
	Title         Optional[string]    `json:"title"`
	Type          Optional[string]    `json:"type"`
	PriorityLevel Optional[string]    `json:"priority_level"`
	AssignedTo    Optional[string]    `json:"assigned_to"`
	Infos         Optional[string]    `json:"infos"`
	ProcessID     Optional[string]    `json:"process_id"`
	DueDate       Optional[time.Time] `json:"due_date"`
}

// Validate rejects nulls on non-nullable fields and values outside the
// declared enumerations
func (p DeadlinePatch) Validate() error {
	if p.Title.Set && p.Title.Value == nil {
		return errors.New("title cannot be null")
	}
	if p.Type.Set {
		if p.Type.Value == nil {
			return errors.New("type cannot be null")
		}
		if !models.IsValidDeadlineType(*p.Type.Value) {
			return fmt.Errorf("invalid deadline type: %s", *p.Type.Value)
		}
	}
	if p.PriorityLevel.Set {
		if p.PriorityLevel.Value == nil {
			return errors.New("priority level cannot be null")
		}
		if !models.IsValidPriorityLevel(*p.PriorityLevel.Value) {
			return fmt.Errorf("invalid priority level: %s", *p.PriorityLevel.Value)
		}
	}
	return nil
}

func (p DeadlinePatch) apply(deadline *models.Deadline) {
	if p.Title.Set {
		deadline.Title = SanitizeText(*p.Title.Value)
	}
	if p.Type.Set {
		deadline.Type = *p.Type.Value
	}
	if p.PriorityLevel.Set {
		deadline.PriorityLevel = *p.PriorityLevel.Value
	}
	if p.AssignedTo.Set {
		deadline.AssignedTo = SanitizeTextPtr(p.AssignedTo.Value)
	}
	if p.Infos.Set {
		deadline.Infos = SanitizeTextPtr(p.Infos.Value)
	}
	if p.ProcessID.Set {
		deadline.ProcessID = p.ProcessID.Value
	}
	if p.DueDate.Set {
		deadline.DueDate = p.DueDate.Value
	}
}

// UpdateDeadline applies a partial patch. There is no existence pre-check:
// patching a missing deadline is not a business-rule failure, the result is
// simply nil.
func UpdateDeadline(database *gorm.DB, id string, patch DeadlinePatch) (*models.Deadline, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var deadline models.Deadline
	err := database.First(&deadline, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deadline: %w", err)
	}

	patch.apply(&deadline)
	if err := database.Save(&deadline).Error; err != nil {
		return nil, fmt.Errorf("failed to update deadline: %w", err)
	}
	return &deadline, nil
}

// RemoveDeadline hard-deletes a deadline. Removing a missing deadline is a
// no-op.
func RemoveDeadline(database *gorm.DB, id string) error {
	if err := database.Delete(&models.Deadline{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete deadline: %w", err)
	}
	return nil
}
