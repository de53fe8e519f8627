package absence

import (
	"github.com/atlas-rh/pointage-backend-go/internal/pkg/validator"
)

type CreateAbsenceRequest struct {
	UserID    string  `json:"user_id"`
	Type      Type    `json:"type"`
	DateDebut string  `json:"dateDebut"`
	DateFin   string  `json:"dateFin"`
	Motif     *string `json:"motif,omitempty"`
}

func (r *CreateAbsenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if !r.Type.IsFullDay() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of Congé, maladie, Autre absence",
		})
	}

	debut, okDebut := validator.IsValidDate(r.DateDebut)
	if !okDebut {
		errs = append(errs, validator.ValidationError{
			Field:   "dateDebut",
			Message: "dateDebut must be a valid date (YYYY-MM-DD)",
		})
	}

	fin, okFin := validator.IsValidDate(r.DateFin)
	if !okFin {
		errs = append(errs, validator.ValidationError{
			Field:   "dateFin",
			Message: "dateFin must be a valid date (YYYY-MM-DD)",
		})
	}

	if okDebut && okFin && fin.Before(debut) {
		errs = append(errs, validator.ValidationError{
			Field:   "dateFin",
			Message: "dateFin must not be before dateDebut",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AbsenceResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	UserName  *string `json:"user_name,omitempty"`
	Type      Type    `json:"type"`
	DateDebut string  `json:"dateDebut"`
	DateFin   string  `json:"dateFin"`
	Motif     *string `json:"motif,omitempty"`
	Statut    string  `json:"statut"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type ListAbsenceResponse struct {
	TotalCount int               `json:"total_count"`
	Absences   []AbsenceResponse `json:"absences"`
}
