package pointage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/atlas-rh/pointage-backend-go/internal/domain/pointage"
	"github.com/atlas-rh/pointage-backend-go/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

// ValiderTout implements pointage.PointageService. It only acts on the ids
// the caller currently displays, and within those only on records that are
// unvalidated, have a statutJour and are persisted.
func (s *PointageServiceImpl) ValiderTout(ctx context.Context, req pointage.BulkTransitionRequest) (pointage.BulkResult, error) {
	role, err := actingRole(ctx)
	if err != nil {
		return pointage.BulkResult{}, err
	}
	if !role.IsElevated() {
		return pointage.BulkResult{}, user.ErrElevatedRoleRequired
	}

	records, err := s.visibleRecords(ctx, req.IDs)
	if err != nil {
		return pointage.BulkResult{}, err
	}

	candidates := ValidationCandidates(records)
	if len(candidates) == 0 {
		return pointage.BulkResult{Message: "no pointage to validate among the displayed records"}, nil
	}

	return s.fanOutTransitions(ctx, candidates, true), nil
}

// InvaliderTout implements pointage.PointageService. RH only; targets only
// the validated records among the displayed ids.
func (s *PointageServiceImpl) InvaliderTout(ctx context.Context, req pointage.BulkTransitionRequest) (pointage.BulkResult, error) {
	role, err := actingRole(ctx)
	if err != nil {
		return pointage.BulkResult{}, err
	}
	if !role.CanInvalidate() {
		return pointage.BulkResult{}, user.ErrRHRoleRequired
	}

	records, err := s.visibleRecords(ctx, req.IDs)
	if err != nil {
		return pointage.BulkResult{}, err
	}

	candidates := InvalidationCandidates(records)
	if len(candidates) == 0 {
		return pointage.BulkResult{Message: "no validated pointage to invalidate among the displayed records"}, nil
	}

	return s.fanOutTransitions(ctx, candidates, false), nil
}

func (s *PointageServiceImpl) visibleRecords(ctx context.Context, ids []string) ([]pointage.Pointage, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	records, err := s.PointageRepository.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load displayed pointages: %w", err)
	}
	return records, nil
}

// fanOutTransitions issues one transition per record concurrently and joins
// all-settled: a failing request never blocks the others, applied transitions
// are not rolled back, and failures come back in aggregate. Each transition
// is idempotent server-side, so a caller can simply retry.
func (s *PointageServiceImpl) fanOutTransitions(ctx context.Context, ids []string, validated bool) pointage.BulkResult {
	var (
		mu       sync.Mutex
		applied  int
		failures []pointage.BulkFailure
	)

	g := new(errgroup.Group)
	for _, id := range ids {
		g.Go(func() error {
			if _, err := s.PointageRepository.SetValidated(ctx, id, validated); err != nil {
				mu.Lock()
				failures = append(failures, pointage.BulkFailure{ID: id, Error: err.Error()})
				mu.Unlock()
				return nil
			}
			mu.Lock()
			applied++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(failures, func(i, j int) bool { return failures[i].ID < failures[j].ID })

	result := pointage.BulkResult{
		Requested: len(ids),
		Applied:   applied,
		Failures:  failures,
	}
	if len(failures) > 0 {
		result.Message = fmt.Sprintf("%d of %d transitions failed", len(failures), len(ids))
	}
	return result
}
