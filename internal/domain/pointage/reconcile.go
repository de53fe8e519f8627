package pointage

import (
	"time"

	"github.com/atlas-rh/pointage-backend-go/internal/domain/absence"
	"github.com/atlas-rh/pointage-backend-go/internal/domain/user"
	"github.com/atlas-rh/pointage-backend-go/internal/pkg/validator"
)

// TieBreakPolicy decides which absence request wins when several approved
// requests cover the same user and date. The upstream data does not forbid
// overlaps, so the policy is explicit rather than implied by fetch order.
type TieBreakPolicy string

const (
	// TieBreakFirstMatch keeps the first request in input order. This is
	// the historical behavior of the dashboard this service replaced.
	TieBreakFirstMatch TieBreakPolicy = "first_match"

	// TieBreakSicknessFirst prefers maladie over Congé over Autre absence.
	TieBreakSicknessFirst TieBreakPolicy = "sickness_first"
)

// ReconcileInput carries everything the reconciler needs. The acting role is
// an explicit parameter so the computation stays a pure function of its
// inputs; nothing is read from ambient state.
type ReconcileInput struct {
	Date      time.Time
	Roster    []user.User
	Existing  []Pointage
	Absences  []absence.AbsenceRequest
	ActorRole user.Role
	TieBreak  TieBreakPolicy
}

// EditableRecord is the per-employee working copy derived for one day. It is
// materialized in memory on every reconciliation pass and only persisted
// through the save pipeline.
type EditableRecord struct {
	ID             *string   `json:"id"`
	UserID         string    `json:"user_id"`
	Date           string    `json:"date"`
	HeureEntree    string    `json:"heureEntree"`
	HeureSortie    string    `json:"heureSortie"`
	StatutJour     DayStatus `json:"statutJour"`
	OvertimeHours  int       `json:"overtimeHours"`
	Valider        bool      `json:"valider"`
	LeaveDriven    bool      `json:"isAbsent"`
	AbsenceEndDate *string   `json:"absenceEndDate,omitempty"`

	// Computed for the acting role, not stored.
	FieldsDisabled bool `json:"fieldsDisabled"`
	SaveEnabled    bool `json:"saveEnabled"`
}

// LeaveEntry is one row of the on-leave roster.
type LeaveEntry struct {
	UserID         string       `json:"user_id"`
	UserName       string       `json:"user_name"`
	AbsenceType    absence.Type `json:"absenceType"`
	AbsenceMotif   string       `json:"absenceMotif"`
	AbsenceEndDate string       `json:"absenceEndDate"`
	DepartementID  *string      `json:"departement_id,omitempty"`
	SocieteID      *string      `json:"societe_id,omitempty"`
}

// Reconciliation is the derived view for one date and roster.
type Reconciliation struct {
	Date              string                    `json:"date"`
	Editable          map[string]EditableRecord `json:"editable"`
	AvailableForEntry []user.User               `json:"-"`
	OnLeave           []LeaveEntry              `json:"onLeave"`
}

// FieldEdit is a partial in-memory edit of an editable record. Nil fields are
// left untouched.
type FieldEdit struct {
	UserID        string     `json:"user_id"`
	HeureEntree   *string    `json:"heureEntree,omitempty"`
	HeureSortie   *string    `json:"heureSortie,omitempty"`
	StatutJour    *DayStatus `json:"statutJour,omitempty"`
	OvertimeHours *int       `json:"overtimeHours,omitempty"`
}

// Normalized returns the edit with clock times zero-padded to "HH:MM", so a
// typed "8:00" compares equal to a persisted "08:00" in the delta.
func (e FieldEdit) Normalized() FieldEdit {
	if e.HeureEntree != nil {
		v := validator.NormalizeClockTime(*e.HeureEntree)
		e.HeureEntree = &v
	}
	if e.HeureSortie != nil {
		v := validator.NormalizeClockTime(*e.HeureSortie)
		e.HeureSortie = &v
	}
	return e
}

// ApplyEdit merges a field edit into the record and returns the result. Pure;
// no reconciliation re-run, no side effects.
func (r EditableRecord) ApplyEdit(edit FieldEdit) EditableRecord {
	if edit.HeureEntree != nil {
		r.HeureEntree = *edit.HeureEntree
	}
	if edit.HeureSortie != nil {
		r.HeureSortie = *edit.HeureSortie
	}
	if edit.StatutJour != nil {
		r.StatutJour = *edit.StatutJour
	}
	if edit.OvertimeHours != nil {
		r.OvertimeHours = *edit.OvertimeHours
	}
	return r
}

// DisabledFor computes field mutability for a role. A record is frozen when
// it is driven by an approved absence, when it has been validated, or when an
// Employe is looking at a record that already has an id (first-time entry is
// allowed, later edits are not).
func (r EditableRecord) DisabledFor(role user.Role) bool {
	if r.LeaveDriven {
		return true
	}
	if r.Valider {
		return true
	}
	if role == user.RoleEmploye && r.ID != nil {
		return true
	}
	return false
}

// SaveEnabledFor reports whether the save action is available: fields must be
// editable and statutJour must be set.
func (r EditableRecord) SaveEnabledFor(role user.Role) bool {
	return !r.DisabledFor(role) && r.StatutJour != StatusEmpty
}

// SavePayload builds the normalized persistence payload. A statutJour of
// "absent" forces the time fields to nil and overtime to zero regardless of
// what was typed before the status changed.
func (r EditableRecord) SavePayload() Pointage {
	p := Pointage{
		UserID:        r.UserID,
		StatutJour:    r.StatutJour,
		OvertimeHours: r.OvertimeHours,
	}
	if r.ID != nil {
		p.ID = *r.ID
	}
	if d, err := time.Parse("2006-01-02", r.Date); err == nil {
		p.Date = d
	}
	if r.StatutJour == StatusAbsent {
		p.OvertimeHours = 0
		return p
	}
	if r.HeureEntree != "" {
		he := r.HeureEntree
		p.HeureEntree = &he
	}
	if r.HeureSortie != "" {
		hs := r.HeureSortie
		p.HeureSortie = &hs
	}
	return p
}
