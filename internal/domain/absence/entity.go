package absence

import "time"

// Type of an absence request. The three values below are the "full day"
// categories: an approved request of one of these types covering a date
// removes the employee from attendance entry for that day.
type Type string

const (
	TypeConge   Type = "Congé"
	TypeMaladie Type = "maladie"
	TypeAutre   Type = "Autre absence"
)

type RequestStatus string

const (
	StatusEnAttente RequestStatus = "en_attente"
	StatusValide    RequestStatus = "validé"
	StatusRejete    RequestStatus = "rejeté"
	StatusApprouve  RequestStatus = "approuvé"
)

type AbsenceRequest struct {
	ID        string
	UserID    string
	Type      Type
	DateDebut time.Time
	DateFin   time.Time
	Motif     *string
	Statut    RequestStatus
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	UserName *string
}

// IsFullDay reports whether t blocks attendance entry for the whole day.
// Other type values may occur in imported data; they only set the soft
// "has absence overlap" flag on the reconciled record.
func (t Type) IsFullDay() bool {
	switch t {
	case TypeConge, TypeMaladie, TypeAutre:
		return true
	}
	return false
}

// IsApproving reports whether the status makes the request relevant to
// attendance reconciliation. Both "validé" and "approuvé" occur in the data.
func (s RequestStatus) IsApproving() bool {
	return s == StatusValide || s == StatusApprouve
}

// Covers reports whether date falls inside the request's [DateDebut, DateFin]
// interval, comparing calendar days only.
func (r *AbsenceRequest) Covers(date time.Time) bool {
	d := truncateDay(date)
	return !d.Before(truncateDay(r.DateDebut)) && !d.After(truncateDay(r.DateFin))
}

// Blocks reports whether the request takes the employee out of attendance
// entry for date: approving status, full-day type, interval containing date.
func (r *AbsenceRequest) Blocks(date time.Time) bool {
	return r.Statut.IsApproving() && r.Type.IsFullDay() && r.Covers(date)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
