package auth

import (
	"github.com/atlas-rh/pointage-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "a valid email is required",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresAt   int64       `json:"expires_at"`
	User        UserPayload `json:"user"`

	// Refresh token travels in an HTTP-only cookie, never in the body.
	RefreshToken          string `json:"-"`
	RefreshTokenExpiresAt int64  `json:"-"`
}

// UserPayload mirrors what the dashboard keeps in local storage: identity
// plus the role the reconciler receives.
type UserPayload struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Prenom        string  `json:"prenom"`
	Email         string  `json:"email"`
	Role          string  `json:"role"`
	DepartementID *string `json:"departement_id,omitempty"`
	SocieteID     *string `json:"societe_id,omitempty"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}
