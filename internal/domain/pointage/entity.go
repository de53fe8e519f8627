package pointage

import (
	"time"

	"github.com/atlas-rh/pointage-backend-go/internal/domain/absence"
)

// DayStatus is the statutJour tag on a pointage. Hand-entered values are
// "present", "absent" and "retard"; absence-driven records carry the absence
// type ("Congé", "maladie", "Autre absence") instead.
type DayStatus string

const (
	StatusEmpty   DayStatus = ""
	StatusPresent DayStatus = "present"
	StatusAbsent  DayStatus = "absent"
	StatusRetard  DayStatus = "retard"
)

// IsEntryStatus reports whether s is one of the hand-entered day statuses.
func (s DayStatus) IsEntryStatus() bool {
	return s == StatusPresent || s == StatusAbsent || s == StatusRetard
}

// IsFullDayAbsence reports whether s is an absence-derived tag. Records
// carrying one of these are never written by the save pipeline.
func (s DayStatus) IsFullDayAbsence() bool {
	return absence.Type(s).IsFullDay()
}

type Pointage struct {
	ID            string
	UserID        string
	Date          time.Time
	HeureEntree   *string // "HH:MM", nil when not clocked
	HeureSortie   *string
	StatutJour    DayStatus
	OvertimeHours int
	Valider       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO / Join
	UserName  *string
	SocieteID *string
}
