package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Process status constants
const (
	ProcessStatusActive    = "active"
	ProcessStatusUndefined = "undefined"
	ProcessStatusDismissed = "dismissed"
	ProcessStatusClosed    = "closed"
	ProcessStatusSuspended = "suspended"
	ProcessStatusArchived  = "archived"
)

// Process area constants (branch of law the case belongs to)
const (
	ProcessAreaCivil          = "civil"
	ProcessAreaLabor          = "labor"
	ProcessAreaCriminal       = "criminal"
	ProcessAreaFamily         = "family"
	ProcessAreaTax            = "tax"
	ProcessAreaAdministrative = "administrative"
	ProcessAreaConstitutional = "constitutional"
	ProcessAreaInternational  = "international"
)

// Party type constants
const (
	PartyTypeIndividual = "individual"
	PartyTypeCompany    = "company"
	PartyTypeGovernment = "government"
)

// Party identifies one side of a process
type Party struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"` // individual, company, government
	Document *string `json:"document,omitempty"`
}

// PartyLawyers holds the lawyer names representing each side
type PartyLawyers struct {
	Plaintiff []string `json:"plaintiff,omitempty"`
	Defendant []string `json:"defendant,omitempty"`
}

// Parties groups both sides of a process and their counsel
type Parties struct {
	Plaintiff Party         `json:"plaintiff"`
	Defendant Party         `json:"defendant"`
	Lawyers   *PartyLawyers `json:"lawyers,omitempty"`
}

// Process represents a legal case record
type Process struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Case identification
	CaseNumber string `gorm:"not null;index" json:"case_number"` // unique among non-deleted rows, see db.EnsureIndexes
	Court      string `gorm:"not null" json:"court"`
	Area       string `gorm:"not null;index" json:"area"`

	// Parties are stored as a JSON document; they are read and written as a
	// unit and never queried field-by-field
	Parties Parties `gorm:"serializer:json" json:"parties"`

	Status        *string `gorm:"index" json:"status"`
	Client        *string `json:"client,omitempty"`
	OpposingParty *string `json:"opposing_party,omitempty"`

	// Soft delete tracking. Deleted rows are kept for audit/history and are
	// excluded from every read path except the admin-only deleted listing.
	Deleted   bool       `gorm:"not null;default:false;index" json:"deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	DeletedBy *string    `gorm:"type:uuid" json:"deleted_by,omitempty"`

	// Relationships (for reading, not for data integrity)
	Deleter *User `gorm:"foreignKey:DeletedBy" json:"-"`
}

// BeforeCreate hook to generate UUID
func (p *Process) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Process model
func (Process) TableName() string {
	return "processes"
}

// IsActive checks whether the process is still part of normal reads
func (p *Process) IsActive() bool {
	return !p.Deleted
}

// IsValidProcessStatus checks if the status is valid
func IsValidProcessStatus(status string) bool {
	switch status {
	case ProcessStatusActive,
		ProcessStatusUndefined,
		ProcessStatusDismissed,
		ProcessStatusClosed,
		ProcessStatusSuspended,
		ProcessStatusArchived:
		return true
	}
	return false
}

// IsValidProcessArea checks if the area is valid
func IsValidProcessArea(area string) bool {
	switch area {
	case ProcessAreaCivil,
		ProcessAreaLabor,
		ProcessAreaCriminal,
		ProcessAreaFamily,
		ProcessAreaTax,
		ProcessAreaAdministrative,
		ProcessAreaConstitutional,
		ProcessAreaInternational:
		return true
	}
	return false
}

// IsValidPartyType checks if the party type is valid
func IsValidPartyType(partyType string) bool {
	return partyType == PartyTypeIndividual ||
		partyType == PartyTypeCompany ||
		partyType == PartyTypeGovernment
}
