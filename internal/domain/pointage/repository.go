package pointage

import (
	"context"
	"time"
)

// PointageRepository defines data access for pointage records. At most one
// record exists per (user, date); the unique constraint lives in the schema
// and Create surfaces violations as ErrDuplicatePointage.
type PointageRepository interface {
	Create(ctx context.Context, p Pointage) (Pointage, error)
	GetByID(ctx context.Context, id string) (Pointage, error)

	// GetByUserAndDate returns nil, nil when no record exists.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Pointage, error)

	Update(ctx context.Context, p Pointage) (Pointage, error)

	// UpdateMany writes every row or none; a failing row rolls back the batch.
	UpdateMany(ctx context.Context, pointages []Pointage) ([]Pointage, error)

	List(ctx context.Context, filter PointageFilter) ([]Pointage, int64, error)
	ListByDate(ctx context.Context, date time.Time) ([]Pointage, error)
	ListByIDs(ctx context.Context, ids []string) ([]Pointage, error)

	// SetValidated flips the validation flag and returns the canonical row.
	SetValidated(ctx context.Context, id string, validated bool) (Pointage, error)

	DeleteByIDs(ctx context.Context, ids []string) error
}
