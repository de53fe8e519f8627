package absence

import "context"

// AbsenceService defines business logic for absence requests.
type AbsenceService interface {
	CreateAbsence(ctx context.Context, req CreateAbsenceRequest) (AbsenceResponse, error)
	ListAbsences(ctx context.Context, filter AbsenceFilter) (ListAbsenceResponse, error)
	GetAbsence(ctx context.Context, id string) (AbsenceResponse, error)

	// ApproveAbsence / RejectAbsence transition a pending request. Requests
	// already validated or rejected are not re-processed.
	ApproveAbsence(ctx context.Context, id string) (AbsenceResponse, error)
	RejectAbsence(ctx context.Context, id string) (AbsenceResponse, error)
}
