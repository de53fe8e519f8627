package absence

import (
	"context"
	"time"
)

type AbsenceFilter struct {
	UserID *string
	Statut *RequestStatus
	Type   *Type
}

type AbsenceRepository interface {
	Create(ctx context.Context, req AbsenceRequest) (AbsenceRequest, error)
	GetByID(ctx context.Context, id string) (AbsenceRequest, error)
	List(ctx context.Context, filter AbsenceFilter) ([]AbsenceRequest, error)

	// ListApprovedCovering returns requests with an approving status whose
	// [dateDebut, dateFin] interval contains date, in creation order. The
	// reconciler applies its own tie-break when several cover the same user.
	ListApprovedCovering(ctx context.Context, date time.Time) ([]AbsenceRequest, error)

	SetStatus(ctx context.Context, id string, statut RequestStatus) (AbsenceRequest, error)
}
