package services

import (
	"errors"
	"fmt"
	"process_flow_go/models"
	"strings"
	"time"

	"gorm.io/gorm"
)

// CreateProcessInput holds the fields accepted when registering a new process
type CreateProcessInput struct {
	CaseNumber    string         `json:"case_number"`
	Court         string         `json:"court"`
	Area          string         `json:"area"`
	Parties       models.Parties `json:"parties"`
	Status        *string        `json:"status"`
	Client        *string        `json:"client,omitempty"`
	OpposingParty *string        `json:"opposing_party,omitempty"`
}

// CreateProcess registers a new process. The case number must be unique among
// non-deleted processes: the check and the insert run inside one transaction,
// and the partial unique index (db.EnsureIndexes) backs the same invariant at
// the store level. Returns the full created document.
func CreateProcess(database *gorm.DB, input CreateProcessInput) (*models.Process, error) {
	process := &models.Process{
		CaseNumber:    strings.TrimSpace(input.CaseNumber),
		Court:         SanitizeText(input.Court),
		Area:          input.Area,
		Parties:       sanitizeParties(input.Parties),
		Status:        input.Status,
		Client:        SanitizeTextPtr(input.Client),
		OpposingParty: SanitizeTextPtr(input.OpposingParty),
	}

	err := database.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Process{}).
			Where("case_number = ? AND deleted = ?", process.CaseNumber, false).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check case number uniqueness: %w", err)
		}
		if count > 0 {
			return ErrResourceAlreadyExists
		}

		if err := tx.Create(process).Error; err != nil {
			return fmt.Errorf("failed to create process: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return process, nil
}

// FindProcessByID returns the process, or nil when it does not exist or has
// been soft-deleted. Absence is not an error on query paths.
func FindProcessByID(database *gorm.DB, id string) (*models.Process, error) {
	var process models.Process
	err := database.Where("id = ? AND deleted = ?", id, false).First(&process).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch process: %w", err)
	}
	return &process, nil
}

// FindProcessByCaseNumber returns the first non-deleted process with the given
// case number, or nil when there is none
func FindProcessByCaseNumber(database *gorm.DB, caseNumber string) (*models.Process, error) {
	var process models.Process
	err := database.Where("case_number = ? AND deleted = ?", caseNumber, false).First(&process).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch process by case number: %w", err)
	}
	return &process, nil
}

// ListProcesses returns all non-deleted processes, newest first
func ListProcesses(database *gorm.DB) ([]models.Process, error) {
	var processes []models.Process
	err := database.Where("deleted = ?", false).Order("created_at DESC").Find(&processes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	return processes, nil
}

// ListDeletedProcesses returns the soft-deleted processes. Administrative
// operation: requires an authenticated caller with the admin role.
func ListDeletedProcesses(database *gorm.DB, caller *models.User) ([]models.Process, error) {
	if caller == nil {
		return nil, ErrNotAuthenticated
	}
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	var processes []models.Process
	err := database.Where("deleted = ?", true).Order("deleted_at DESC").Find(&processes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list deleted processes: %w", err)
	}
	return processes, nil
}

// ProcessPatch is a partial update: only fields present in the payload change.
// Status and opposing party may be cleared with an explicit null; the
// remaining fields are non-nullable.
type ProcessPatch struct {
	Court         Optional[string]         `json:"court"`
	Area          Optional[string]         `json:"area"`
	Parties       Optional[models.Parties] `json:"parties"`
	Status        Optional[string]         `json:"status"`
	Client        Optional[string]         `json:"client"`
	OpposingParty Optional[string]         `json:"opposing_party"`
}

// Validate rejects nulls on non-nullable fields and values outside the
// declared enumerations
func (p ProcessPatch) Validate() error {
	if p.Court.Set && p.Court.Value == nil {
		return errors.New("court cannot be null")
	}
	if p.Area.Set {
		if p.Area.Value == nil {
			return errors.New("area cannot be null")
		}
		if !models.IsValidProcessArea(*p.Area.Value) {
			return fmt.Errorf("invalid area: %s", *p.Area.Value)
		}
	}
	if p.Parties.Set {
		if p.Parties.Value == nil {
			return errors.New("parties cannot be null")
		}
		if err := ValidateParties(*p.Parties.Value); err != nil {
			return err
		}
	}
	if p.Status.Set && p.Status.Value != nil && !models.IsValidProcessStatus(*p.Status.Value) {
		return fmt.Errorf("invalid status: %s", *p.Status.Value)
	}
	if p.Client.Set && p.Client.Value == nil {
		return errors.New("client cannot be null")
	}
	return nil
}

// apply copies the set fields onto the loaded record
func (p ProcessPatch) apply(process *models.Process) {
	if p.Court.Set {
		process.Court = SanitizeText(*p.Court.Value)
	}
	if p.Area.Set {
		process.Area = *p.Area.Value
	}
	if p.Parties.Set {
		process.Parties = sanitizeParties(*p.Parties.Value)
	}
	if p.Status.Set {
		process.Status = p.Status.Value
	}
	if p.Client.Set {
		process.Client = SanitizeTextPtr(p.Client.Value)
	}
	if p.OpposingParty.Set {
		process.OpposingParty = SanitizeTextPtr(p.OpposingParty.Value)
	}
}

// UpdateProcess applies a partial patch to a process. The target must exist
// and not be soft-deleted; a deleted target is indistinguishable from a
// missing one. Returns the updated document.
func UpdateProcess(database *gorm.DB, id string, patch ProcessPatch) (*models.Process, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var process models.Process
	err := database.Where("id = ? AND deleted = ?", id, false).First(&process).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch process: %w", err)
	}

	patch.apply(&process)
	if err := database.Save(&process).Error; err != nil {
		return nil, fmt.Errorf("failed to update process: %w", err)
	}

	return &process, nil
}

// SoftDeleteProcess flags a process as deleted, recording when and by whom.
// The target must exist and not already be deleted; both failures surface as
// not-found so deletion state never leaks. Related deadlines are looked up
// for the audit note but never mutated: they are kept as-is for compliance.
// Returns the number of deadlines that reference the process.
func SoftDeleteProcess(database *gorm.DB, id string, caller *models.User) (int64, error) {
	if caller == nil {
		return 0, ErrNotAuthenticated
	}
	if !caller.CanManageProcesses() {
		return 0, ErrForbidden
	}

	var process models.Process
	err := database.Where("id = ? AND deleted = ?", id, false).First(&process).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrResourceNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to fetch process: %w", err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"deleted":    true,
		"deleted_at": &now,
		"deleted_by": caller.ID,
	}
	if err := database.Model(&process).Updates(updates).Error; err != nil {
		return 0, fmt.Errorf("failed to soft-delete process: %w", err)
	}

	var related int64
	if err := database.Model(&models.Deadline{}).Where("process_id = ?", id).Count(&related).Error; err != nil {
		return 0, fmt.Errorf("failed to count related deadlines: %w", err)
	}

	return related, nil
}

// ValidateParties checks both party records and any lawyer lists
func ValidateParties(parties models.Parties) error {
	if strings.TrimSpace(parties.Plaintiff.Name) == "" {
		return errors.New("plaintiff name is required")
	}
	if !models.IsValidPartyType(parties.Plaintiff.Type) {
		return fmt.Errorf("invalid plaintiff type: %s", parties.Plaintiff.Type)
	}
	if strings.TrimSpace(parties.Defendant.Name) == "" {
		return errors.New("defendant name is required")
	}
	if !models.IsValidPartyType(parties.Defendant.Type) {
		return fmt.Errorf("invalid defendant type: %s", parties.Defendant.Type)
	}
	return nil
}

// sanitizeParties strips markup from every free-text field of the parties bag
func sanitizeParties(parties models.Parties) models.Parties {
	parties.Plaintiff.Name = SanitizeText(parties.Plaintiff.Name)
	parties.Plaintiff.Document = SanitizeTextPtr(parties.Plaintiff.Document)
	parties.Defendant.Name = SanitizeText(parties.Defendant.Name)
	parties.Defendant.Document = SanitizeTextPtr(parties.Defendant.Document)
	if parties.Lawyers != nil {
		for i, name := range parties.Lawyers.Plaintiff {
			parties.Lawyers.Plaintiff[i] = SanitizeText(name)
		}
		for i, name := range parties.Lawyers.Defendant {
			parties.Lawyers.Defendant[i] = SanitizeText(name)
		}
	}
	return parties
}
