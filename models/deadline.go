package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Deadline type constants (Brazilian procedural acts)
const (
	DeadlineTypeContestacao          = "Contestação"
	DeadlineTypeAudienciaConciliacao = "Audiência de Conciliação"
	DeadlineTypeRecurso              = "Recurso"
	DeadlineTypePeticaoInicial       = "Petição Inicial"
	DeadlineTypeAlegacoesFinais      = "Alegações Finais"
	DeadlineTypeEmbargosDeclaracao   = "Embargos de Declaração"
	DeadlineTypeApelacao             = "Apelação"
	DeadlineTypeContraRazoes         = "Contra-razões"
)

// Priority level constants
const (
	PriorityLevelHigh   = "high"
	PriorityLevelMedium = "medium"
	PriorityLevelLow    = "low"
)

// DeadlineTypes lists every valid deadline type, in display order
var DeadlineTypes = []string{
	DeadlineTypeContestacao,
	DeadlineTypeAudienciaConciliacao,
	DeadlineTypeRecurso,
	DeadlineTypePeticaoInicial,
	DeadlineTypeAlegacoesFinais,
	DeadlineTypeEmbargosDeclaracao,
	DeadlineTypeApelacao,
	DeadlineTypeContraRazoes,
}

// Deadline represents a procedural task or due date, optionally tied to a process
type Deadline struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title         string  `gorm:"not null" json:"title"`
	Type          string  `gorm:"not null;index" json:"type"`
	PriorityLevel string  `gorm:"not null;default:medium;index" json:"priority_level"`
	AssignedTo    *string `gorm:"index" json:"assigned_to,omitempty"`
	Infos         *string `gorm:"type:text" json:"infos,omitempty"`

	// Reference to the parent process. Intentionally a bare column without a
	// foreign key constraint: creation does not verify the process exists,
	// and deadlines outlive soft-deleted processes.
	ProcessID *string `gorm:"type:uuid;index" json:"process_id,omitempty"`

	// Reminder scheduling
	DueDate        *time.Time `gorm:"index" json:"due_date,omitempty"`
	ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`
}

// BeforeCreate hook to generate UUID and default the priority
func (d *Deadline) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.PriorityLevel == "" {
		d.PriorityLevel = PriorityLevelMedium
	}
	return nil
}

// TableName specifies the table name for Deadline model
func (Deadline) TableName() string {
	return "deadlines"
}

// IsValidDeadlineType checks if the deadline type is valid
func IsValidDeadlineType(deadlineType string) bool {
	for _, t := range DeadlineTypes {
		if t == deadlineType {
			return true
		}
	}
	return false
}

// IsValidPriorityLevel checks if the priority level is valid
func IsValidPriorityLevel(level string) bool {
	return level == PriorityLevelHigh ||
		level == PriorityLevelMedium ||
		level == PriorityLevelLow
}
