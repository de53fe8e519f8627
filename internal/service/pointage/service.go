package pointage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/atlas-rh/pointage-backend-go/internal/domain/absence"
	"github.com/atlas-rh/pointage-backend-go/internal/domain/pointage"
	"github.com/atlas-rh/pointage-backend-go/internal/domain/user"
	"github.com/atlas-rh/pointage-backend-go/internal/pkg/database"
	"github.com/atlas-rh/pointage-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/sync/errgroup"
)

type PointageServiceImpl struct {
	db *database.DB
	pointage.PointageRepository
	user.UserRepository
	absence.AbsenceRepository
	tieBreak pointage.TieBreakPolicy
}

func NewPointageService(
	db *database.DB,
	pointageRepo pointage.PointageRepository,
	userRepo user.UserRepository,
	absenceRepo absence.AbsenceRepository,
	tieBreak pointage.TieBreakPolicy,
) pointage.PointageService {
	return &PointageServiceImpl{
		db:                 db,
		PointageRepository: pointageRepo,
		UserRepository:     userRepo,
		AbsenceRepository:  absenceRepo,
		tieBreak:           tieBreak,
	}
}

// actingRole extracts the caller's role from JWT claims. The role is passed
// explicitly into the reconciler so the merge itself stays pure.
func actingRole(ctx context.Context) (user.Role, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return "", fmt.Errorf("role claim is missing or invalid")
	}

	role := user.Role(roleStr)
	if !role.IsValid() {
		return "", user.ErrInvalidRole
	}
	return role, nil
}

// Journal implements pointage.PointageService.
func (s *PointageServiceImpl) Journal(ctx context.Context, filter pointage.JournalFilter) (pointage.JournalResponse, error) {
	if err := filter.Validate(); err != nil {
		return pointage.JournalResponse{}, err
	}

	role, err := actingRole(ctx)
	if err != nil {
		return pointage.JournalResponse{}, err
	}

	rec, err := s.reconcileDay(ctx, filter, role)
	if err != nil {
		return pointage.JournalResponse{}, err
	}

	roster := make([]pointage.RosterUser, 0, len(rec.AvailableForEntry))
	for _, u := range rec.AvailableForEntry {
		roster = append(roster, pointage.RosterUser{
			ID:            u.ID,
			Name:          u.Name,
			Prenom:        u.Prenom,
			DepartementID: u.DepartementID,
			SocieteID:     u.SocieteID,
		})
	}

	return pointage.JournalResponse{
		Date:              rec.Date,
		Editable:          rec.Editable,
		AvailableForEntry: roster,
		OnLeave:           rec.OnLeave,
	}, nil
}

// reconcileDay fetches the three input signals and runs the pure reconciler.
func (s *PointageServiceImpl) reconcileDay(ctx context.Context, filter pointage.JournalFilter, role user.Role) (pointage.Reconciliation, error) {
	date, _ := time.Parse("2006-01-02", filter.Date)

	roster, err := s.UserRepository.ListActive(ctx, user.RosterFilter{
		SocieteID:     filter.SocieteID,
		DepartementID: filter.DepartementID,
		UserID:        filter.UserID,
	})
	if err != nil {
		return pointage.Reconciliation{}, fmt.Errorf("failed to list active users: %w", err)
	}

	existing, err := s.PointageRepository.ListByDate(ctx, date)
	if err != nil {
		return pointage.Reconciliation{}, fmt.Errorf("failed to list pointages for date: %w", err)
	}

	absences, err := s.AbsenceRepository.ListApprovedCovering(ctx, date)
	if err != nil {
		return pointage.Reconciliation{}, fmt.Errorf("failed to list absence requests: %w", err)
	}

	return Reconcile(pointage.ReconcileInput{
		Date:      date,
		Roster:    roster,
		Existing:  existing,
		Absences:  absences,
		ActorRole: role,
		TieBreak:  s.tieBreak,
	}), nil
}

// ListPointages implements pointage.PointageService.
func (s *PointageServiceImpl) ListPointages(ctx context.Context, filter pointage.PointageFilter) (pointage.ListPointageResponse, error) {
	pointages, total, err := s.PointageRepository.List(ctx, filter)
	if err != nil {
		return pointage.ListPointageResponse{}, fmt.Errorf("failed to list pointages: %w", err)
	}

	responses := make([]pointage.PointageResponse, 0, len(pointages))
	for _, p := range pointages {
		responses = append(responses, mapPointageToResponse(p))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return pointage.ListPointageResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Pointages:  responses,
	}, nil
}

// Save implements pointage.PointageService.
func (s *PointageServiceImpl) Save(ctx context.Context, req pointage.SaveRequest) (pointage.PointageResponse, error) {
	if err := req.Validate(); err != nil {
		return pointage.PointageResponse{}, err
	}

	role, err := actingRole(ctx)
	if err != nil {
		return pointage.PointageResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	existing, err := s.PointageRepository.GetByUserAndDate(ctx, req.UserID, date)
	if err != nil {
		return pointage.PointageResponse{}, fmt.Errorf("failed to look up existing pointage: %w", err)
	}

	if existing != nil {
		if existing.Valider {
			return pointage.PointageResponse{}, pointage.ErrPointageValidated
		}
		if role == user.RoleEmploye {
			return pointage.PointageResponse{}, pointage.ErrRoleCannotEdit
		}
	}

	if err := s.rejectWhenLeaveDriven(ctx, req.UserID, date); err != nil {
		return pointage.PointageResponse{}, err
	}

	rec := pointage.EditableRecord{
		UserID:        req.UserID,
		Date:          req.Date,
		HeureEntree:   validator.NormalizeClockTime(req.HeureEntree),
		HeureSortie:   validator.NormalizeClockTime(req.HeureSortie),
		StatutJour:    req.StatutJour,
		OvertimeHours: req.OvertimeHours,
	}
	payload := rec.SavePayload()

	var saved pointage.Pointage
	if existing == nil {
		saved, err = s.PointageRepository.Create(ctx, payload)
		if err != nil {
			return pointage.PointageResponse{}, fmt.Errorf("failed to create pointage: %w", err)
		}
	} else {
		payload.ID = existing.ID
		saved, err = s.PointageRepository.Update(ctx, payload)
		if err != nil {
			return pointage.PointageResponse{}, fmt.Errorf("failed to update pointage: %w", err)
		}
	}

	return mapPointageToResponse(saved), nil
}

// rejectWhenLeaveDriven blocks saves against a day covered by an approved
// full-day absence. The dashboard greys those rows out; the server enforces
// the same rule for direct API callers.
func (s *PointageServiceImpl) rejectWhenLeaveDriven(ctx context.Context, userID string, date time.Time) error {
	absences, err := s.AbsenceRepository.ListApprovedCovering(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to list absence requests: %w", err)
	}
	for i := range absences {
		if absences[i].UserID == userID && absences[i].Blocks(date) {
			return pointage.ErrLeaveDrivenReadOnly
		}
	}
	return nil
}

// UpdateBatch implements pointage.PointageService.
func (s *PointageServiceImpl) UpdateBatch(ctx context.Context, reqs []pointage.UpdateRequest) ([]pointage.PointageResponse, error) {
	role, err := actingRole(ctx)
	if err != nil {
		return nil, err
	}
	if role == user.RoleEmploye {
		return nil, pointage.ErrRoleCannotEdit
	}

	for i := range reqs {
		if err := reqs[i].Validate(); err != nil {
			return nil, err
		}
	}

	payloads := make([]pointage.Pointage, 0, len(reqs))
	for _, req := range reqs {
		current, err := s.PointageRepository.GetByID(ctx, req.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get pointage %s: %w", req.ID, err)
		}
		if current.Valider {
			return nil, pointage.ErrPointageValidated
		}

		rec := pointage.EditableRecord{
			ID:            &req.ID,
			UserID:        req.UserID,
			Date:          req.Date,
			HeureEntree:   validator.NormalizeClockTime(req.HeureEntree),
			HeureSortie:   validator.NormalizeClockTime(req.HeureSortie),
			StatutJour:    req.StatutJour,
			OvertimeHours: req.OvertimeHours,
		}
		payloads = append(payloads, rec.SavePayload())
	}

	saved, err := s.PointageRepository.UpdateMany(ctx, payloads)
	if err != nil {
		return nil, fmt.Errorf("failed to update pointages: %w", err)
	}

	responses := make([]pointage.PointageResponse, 0, len(saved))
	for _, p := range saved {
		responses = append(responses, mapPointageToResponse(p))
	}

	return responses, nil
}

// SaveAll implements pointage.PointageService.
func (s *PointageServiceImpl) SaveAll(ctx context.Context, req pointage.SaveAllRequest) (pointage.SaveAllResult, error) {
	if err := req.JournalFilter.Validate(); err != nil {
		return pointage.SaveAllResult{}, err
	}

	role, err := actingRole(ctx)
	if err != nil {
		return pointage.SaveAllResult{}, err
	}

	rec, err := s.reconcileDay(ctx, req.JournalFilter, role)
	if err != nil {
		return pointage.SaveAllResult{}, err
	}

	// Merge edits into the derived sheet. Records frozen for this role
	// (leave-driven, validated, or employee-locked) keep their derived state
	// so they can never enter the delta.
	for _, edit := range req.Edits {
		current, ok := rec.Editable[edit.UserID]
		if !ok || current.DisabledFor(role) {
			continue
		}
		rec.Editable[edit.UserID] = current.ApplyEdit(edit.Normalized())
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	persisted, err := s.PointageRepository.ListByDate(ctx, date)
	if err != nil {
		return pointage.SaveAllResult{}, fmt.Errorf("failed to list pointages for date: %w", err)
	}

	delta := SaveSet(rec.Editable, persisted, date)
	if len(delta) == 0 {
		return pointage.SaveAllResult{Message: "no active pointage to save"}, nil
	}

	var updates, creates []pointage.Pointage
	for _, p := range delta {
		if p.ID != "" {
			updates = append(updates, p)
		} else {
			creates = append(creates, p)
		}
	}

	result := pointage.SaveAllResult{}

	// Id-carrying records go out as one transactional batch.
	if len(updates) > 0 {
		if _, err := s.PointageRepository.UpdateMany(ctx, updates); err != nil {
			return result, fmt.Errorf("failed to update pointages: %w", err)
		}
		result.Updated = len(updates)
	}

	// New records are created concurrently and joined all-settled: a failing
	// create never blocks the others, and applied creates are not rolled back.
	var (
		mu       sync.Mutex
		created  int
		failures []pointage.BulkFailure
	)
	g := new(errgroup.Group)
	for _, p := range creates {
		g.Go(func() error {
			if _, err := s.PointageRepository.Create(ctx, p); err != nil {
				mu.Lock()
				failures = append(failures, pointage.BulkFailure{ID: p.UserID, Error: err.Error()})
				mu.Unlock()
				return nil
			}
			mu.Lock()
			created++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(failures, func(i, j int) bool { return failures[i].ID < failures[j].ID })

	result.Created = created
	result.Failures = failures
	if len(failures) > 0 {
		result.Message = fmt.Sprintf("%d of %d creates failed", len(failures), len(creates))
	}

	return result, nil
}

// Valider implements pointage.PointageService.
func (s *PointageServiceImpl) Valider(ctx context.Context, id string) (pointage.PointageResponse, error) {
	role, err := actingRole(ctx)
	if err != nil {
		return pointage.PointageResponse{}, err
	}
	if !role.IsElevated() {
		return pointage.PointageResponse{}, user.ErrElevatedRoleRequired
	}
	if id == "" {
		return pointage.PointageResponse{}, pointage.ErrPointageNotPersisted
	}

	current, err := s.PointageRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pointage.ErrPointageNotFound) {
			return pointage.PointageResponse{}, pointage.ErrPointageNotFound
		}
		return pointage.PointageResponse{}, fmt.Errorf("failed to get pointage: %w", err)
	}
	if current.Valider {
		return pointage.PointageResponse{}, pointage.ErrPointageAlreadyValid
	}

	p, err := s.PointageRepository.SetValidated(ctx, id, true)
	if err != nil {
		if errors.Is(err, pointage.ErrPointageNotFound) {
			return pointage.PointageResponse{}, pointage.ErrPointageNotFound
		}
		return pointage.PointageResponse{}, fmt.Errorf("failed to validate pointage: %w", err)
	}

	return mapPointageToResponse(p), nil
}

// Invalider implements pointage.PointageService.
func (s *PointageServiceImpl) Invalider(ctx context.Context, id string) (pointage.PointageResponse, error) {
	role, err := actingRole(ctx)
	if err != nil {
		return pointage.PointageResponse{}, err
	}
	if !role.CanInvalidate() {
		return pointage.PointageResponse{}, user.ErrRHRoleRequired
	}
	if id == "" {
		return pointage.PointageResponse{}, pointage.ErrPointageNotPersisted
	}

	current, err := s.PointageRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pointage.ErrPointageNotFound) {
			return pointage.PointageResponse{}, pointage.ErrPointageNotFound
		}
		return pointage.PointageResponse{}, fmt.Errorf("failed to get pointage: %w", err)
	}
	if !current.Valider {
		return pointage.PointageResponse{}, pointage.ErrPointageNotYetValidated
	}

	p, err := s.PointageRepository.SetValidated(ctx, id, false)
	if err != nil {
		if errors.Is(err, pointage.ErrPointageNotFound) {
			return pointage.PointageResponse{}, pointage.ErrPointageNotFound
		}
		return pointage.PointageResponse{}, fmt.Errorf("failed to invalidate pointage: %w", err)
	}

	return mapPointageToResponse(p), nil
}

// Delete implements pointage.PointageService.
func (s *PointageServiceImpl) Delete(ctx context.Context, req pointage.DeleteRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	role, err := actingRole(ctx)
	if err != nil {
		return err
	}
	if !role.IsElevated() {
		return user.ErrElevatedRoleRequired
	}

	if err := s.PointageRepository.DeleteByIDs(ctx, req.IDs); err != nil {
		return fmt.Errorf("failed to delete pointages: %w", err)
	}
	return nil
}

// mapPointageToResponse converts a Pointage entity to PointageResponse.
func mapPointageToResponse(p pointage.Pointage) pointage.PointageResponse {
	return pointage.PointageResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		UserName:      p.UserName,
		Date:          p.Date.Format("2006-01-02"),
		HeureEntree:   p.HeureEntree,
		HeureSortie:   p.HeureSortie,
		StatutJour:    string(p.StatutJour),
		OvertimeHours: p.OvertimeHours,
		Valider:       p.Valider,
		CreatedAt:     p.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     p.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
