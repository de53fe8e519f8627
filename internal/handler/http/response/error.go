package response

import (
	"errors"
	"net/http"

	"github.com/atlas-rh/pointage-backend-go/internal/domain/absence"
	"github.com/atlas-rh/pointage-backend-go/internal/domain/auth"
	"github.com/atlas-rh/pointage-backend-go/internal/domain/company"
	"github.com/atlas-rh/pointage-backend-go/internal/domain/department"
	"github.com/atlas-rh/pointage-backend-go/internal/domain/pointage"
	"github.com/atlas-rh/pointage-backend-go/internal/domain/user"
	"github.com/atlas-rh/pointage-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")

	// Role errors
	case errors.Is(err, user.ErrElevatedRoleRequired):
		Forbidden(w, "Validation requires RH, Chef_Dep or Chef_Projet role")
	case errors.Is(err, user.ErrRHRoleRequired):
		Forbidden(w, "Only RH can invalidate pointages")
	case errors.Is(err, user.ErrInvalidRole):
		Forbidden(w, "Unknown role")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Pointage domain errors
	case errors.Is(err, pointage.ErrPointageNotFound):
		NotFound(w, "Pointage not found")
	case errors.Is(err, pointage.ErrDuplicatePointage):
		Conflict(w, "A pointage already exists for this user and date")
	case errors.Is(err, pointage.ErrPointageValidated):
		Conflict(w, "Pointage is validated and cannot be modified")
	case errors.Is(err, pointage.ErrPointageAlreadyValid):
		Conflict(w, "Pointage is already validated")
	case errors.Is(err, pointage.ErrPointageNotYetValidated):
		Conflict(w, "Pointage is not validated")
	case errors.Is(err, pointage.ErrLeaveDrivenReadOnly):
		BadRequest(w, "Pointage is driven by an approved absence and cannot be edited", nil)
	case errors.Is(err, pointage.ErrRoleCannotEdit):
		Forbidden(w, "Employees cannot edit an already saved pointage")
	case errors.Is(err, pointage.ErrPointageNotPersisted):
		BadRequest(w, "Pointage must be saved before it can be validated", nil)

	// Absence domain errors
	case errors.Is(err, absence.ErrAbsenceRequestNotFound):
		NotFound(w, "Absence request not found")
	case errors.Is(err, absence.ErrAbsenceRequestAlreadyProcessed):
		Conflict(w, "Absence request has already been processed")

	// Master data errors
	case errors.Is(err, department.ErrDepartementNotFound):
		NotFound(w, "Departement not found")
	case errors.Is(err, company.ErrSocieteNotFound):
		NotFound(w, "Societe not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
