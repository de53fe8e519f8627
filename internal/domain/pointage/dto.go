package pointage

import (
	"github.com/atlas-rh/pointage-backend-go/internal/pkg/validator"
)

// ========================================
// POINTAGE DTOs
// ========================================

// SaveRequest is a single-record save. A missing id means create; an id means
// update. Time fields are "HH:MM" strings; empty means not clocked.
type SaveRequest struct {
	ID            *string   `json:"id,omitempty"`
	UserID        string    `json:"user_id"`
	Date          string    `json:"date"`
	HeureEntree   string    `json:"heureEntree"`
	HeureSortie   string    `json:"heureSortie"`
	StatutJour    DayStatus `json:"statutJour"`
	OvertimeHours int       `json:"overtimeHours"`
}

func (r *SaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid date (YYYY-MM-DD)",
		})
	}

	if !r.StatutJour.IsEntryStatus() {
		errs = append(errs, validator.ValidationError{
			Field:   "statutJour",
			Message: "statutJour must be one of present, absent, retard",
		})
	}

	if r.HeureEntree != "" && !validator.IsValidClockTime(validator.NormalizeClockTime(r.HeureEntree)) {
		errs = append(errs, validator.ValidationError{
			Field:   "heureEntree",
			Message: "heureEntree must be a valid time (HH:MM)",
		})
	}

	if r.HeureSortie != "" && !validator.IsValidClockTime(validator.NormalizeClockTime(r.HeureSortie)) {
		errs = append(errs, validator.ValidationError{
			Field:   "heureSortie",
			Message: "heureSortie must be a valid time (HH:MM)",
		})
	}

	if r.OvertimeHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "overtimeHours",
			Message: "overtimeHours must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateRequest is one entry of a batched update; every entry must carry an id.
type UpdateRequest struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Date          string    `json:"date"`
	HeureEntree   string    `json:"heureEntree"`
	HeureSortie   string    `json:"heureSortie"`
	StatutJour    DayStatus `json:"statutJour"`
	OvertimeHours int       `json:"overtimeHours"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required for updates",
		})
	}

	save := SaveRequest{
		UserID:        r.UserID,
		Date:          r.Date,
		HeureEntree:   r.HeureEntree,
		HeureSortie:   r.HeureSortie,
		StatutJour:    r.StatutJour,
		OvertimeHours: r.OvertimeHours,
	}
	if err := save.Validate(); err != nil {
		if inner, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, inner...)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// JournalFilter selects the reconciled day sheet.
type JournalFilter struct {
	Date          string  `json:"date"`
	SocieteID     *string `json:"societe_id,omitempty"`
	DepartementID *string `json:"departement_id,omitempty"`
	UserID        *string `json:"user_id,omitempty"`
}

func (f *JournalFilter) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(f.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid date (YYYY-MM-DD)",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SaveAllRequest applies a set of field edits to the reconciled day sheet and
// persists whatever actually changed.
type SaveAllRequest struct {
	JournalFilter
	Edits []FieldEdit `json:"edits"`
}

// PointageFilter narrows the flat pointage list.
type PointageFilter struct {
	Date       *string
	UserID     *string
	StatutJour *string
	SocieteID  *string

	Page  int
	Limit int
}

// BulkTransitionRequest carries the ids currently visible to the caller.
// Bulk validate/invalidate never reach past the displayed page.
type BulkTransitionRequest struct {
	IDs []string `json:"ids"`
}

type PointageResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	UserName      *string `json:"user_name,omitempty"`
	Date          string  `json:"date"`
	HeureEntree   *string `json:"heureEntree"`
	HeureSortie   *string `json:"heureSortie"`
	StatutJour    string  `json:"statutJour"`
	OvertimeHours int     `json:"overtimeHours"`
	Valider       bool    `json:"valider"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type ListPointageResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Pointages  []PointageResponse `json:"pointages"`
}

// JournalResponse is the reconciled day sheet for the acting role.
type JournalResponse struct {
	Date              string                    `json:"date"`
	Editable          map[string]EditableRecord `json:"editable"`
	AvailableForEntry []RosterUser              `json:"usersForPointage"`
	OnLeave           []LeaveEntry              `json:"usersWithAbsence"`
}

// RosterUser is the slim user projection the day sheet needs.
type RosterUser struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Prenom        string  `json:"prenom"`
	DepartementID *string `json:"departement_id,omitempty"`
	SocieteID     *string `json:"societe_id,omitempty"`
}

// SaveAllResult reports what the save-all pipeline did. Zero writes with a
// message is the no-op outcome; failed creates come back in aggregate and
// never undo the writes that went through.
type SaveAllResult struct {
	Created  int           `json:"created"`
	Updated  int           `json:"updated"`
	Failures []BulkFailure `json:"failures,omitempty"`
	Message  string        `json:"message,omitempty"`
}

// BulkFailure is one failed write inside a fan-out. ID is the record id for
// validation transitions and the user id for creates.
type BulkFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// BulkResult reports an all-settled bulk transition. Applied transitions are
// never rolled back when siblings fail.
type BulkResult struct {
	Requested int           `json:"requested"`
	Applied   int           `json:"applied"`
	Failures  []BulkFailure `json:"failures,omitempty"`
	Message   string        `json:"message,omitempty"`
}

// DeleteRequest removes pointages by id.
type DeleteRequest struct {
	IDs []string `json:"ids"`
}

func (r *DeleteRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.IDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "ids",
			Message: "at least one id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
