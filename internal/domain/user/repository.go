package user

import "context"

// RosterFilter narrows the active roster before reconciliation. All fields
// are optional; nil means no restriction.
type RosterFilter struct {
	SocieteID     *string
	DepartementID *string
	UserID        *string
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)

	// ListActive returns users whose statut is not Inactif, filtered by
	// société / département / user id. Order is stable (name, prenom).
	ListActive(ctx context.Context, filter RosterFilter) ([]User, error)

	List(ctx context.Context) ([]User, error)
}
