package pointage

import "context"

// PointageService defines business logic for attendance reconciliation and
// the save / validation pipelines. The acting role comes from the request
// context (JWT claims) and is passed explicitly into the pure reconciler.
type PointageService interface {
	// Journal derives the reconciled day sheet: editable records keyed by
	// user id, the roster available for entry, and the on-leave roster.
	Journal(ctx context.Context, filter JournalFilter) (JournalResponse, error)

	// ListPointages returns the flat record list with filters and pagination.
	ListPointages(ctx context.Context, filter PointageFilter) (ListPointageResponse, error)

	// Save persists one record: create when no record exists for the
	// (user, date) pair, update otherwise. Validated and leave-driven
	// records are rejected.
	Save(ctx context.Context, req SaveRequest) (PointageResponse, error)

	// UpdateBatch applies a batched update; every entry must carry an id.
	UpdateBatch(ctx context.Context, reqs []UpdateRequest) ([]PointageResponse, error)

	// SaveAll applies field edits to the reconciled sheet and persists the
	// delta: batched update for records with ids, concurrent creates for
	// the rest. Absence-driven records never reach the wire.
	SaveAll(ctx context.Context, req SaveAllRequest) (SaveAllResult, error)

	// Valider / Invalider transition a single record.
	Valider(ctx context.Context, id string) (PointageResponse, error)
	Invalider(ctx context.Context, id string) (PointageResponse, error)

	// ValiderTout / InvaliderTout fan out over the visible records passed by
	// the caller, all-settled, and report partial failure in aggregate.
	ValiderTout(ctx context.Context, req BulkTransitionRequest) (BulkResult, error)
	InvaliderTout(ctx context.Context, req BulkTransitionRequest) (BulkResult, error)

	Delete(ctx context.Context, req DeleteRequest) error

	// ExportJournal renders the day sheet as an xlsx workbook.
	ExportJournal(ctx context.Context, filter JournalFilter) ([]byte, error)
}
