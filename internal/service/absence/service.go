package absence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atlas-rh/pointage-backend-go/internal/domain/absence"
	"github.com/atlas-rh/pointage-backend-go/internal/domain/user"
	"github.com/atlas-rh/pointage-backend-go/internal/pkg/database"
)

type AbsenceServiceImpl struct {
	db *database.DB
	absence.AbsenceRepository
	user.UserRepository
}

func NewAbsenceService(
	db *database.DB,
	absenceRepo absence.AbsenceRepository,
	userRepo user.UserRepository,
) absence.AbsenceService {
	return &AbsenceServiceImpl{
		db:                db,
		AbsenceRepository: absenceRepo,
		UserRepository:    userRepo,
	}
}

// CreateAbsence implements absence.AbsenceService.
func (s *AbsenceServiceImpl) CreateAbsence(ctx context.Context, req absence.CreateAbsenceRequest) (absence.AbsenceResponse, error) {
	if err := req.Validate(); err != nil {
		return absence.AbsenceResponse{}, err
	}

	if _, err := s.UserRepository.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return absence.AbsenceResponse{}, user.ErrUserNotFound
		}
		return absence.AbsenceResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	debut, _ := time.Parse("2006-01-02", req.DateDebut)
	fin, _ := time.Parse("2006-01-02", req.DateFin)

	created, err := s.AbsenceRepository.Create(ctx, absence.AbsenceRequest{
		UserID:    req.UserID,
		Type:      req.Type,
		DateDebut: debut,
		DateFin:   fin,
		Motif:     req.Motif,
		Statut:    absence.StatusEnAttente,
	})
	if err != nil {
		return absence.AbsenceResponse{}, fmt.Errorf("failed to create absence request: %w", err)
	}

	return mapAbsenceToResponse(created), nil
}

// ListAbsences implements absence.AbsenceService.
func (s *AbsenceServiceImpl) ListAbsences(ctx context.Context, filter absence.AbsenceFilter) (absence.ListAbsenceResponse, error) {
	requests, err := s.AbsenceRepository.List(ctx, filter)
	if err != nil {
		return absence.ListAbsenceResponse{}, fmt.Errorf("failed to list absence requests: %w", err)
	}

	responses := make([]absence.AbsenceResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, mapAbsenceToResponse(r))
	}

	return absence.ListAbsenceResponse{
		TotalCount: len(responses),
		Absences:   responses,
	}, nil
}

// GetAbsence implements absence.AbsenceService.
func (s *AbsenceServiceImpl) GetAbsence(ctx context.Context, id string) (absence.AbsenceResponse, error) {
	req, err := s.AbsenceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, absence.ErrAbsenceRequestNotFound) {
			return absence.AbsenceResponse{}, absence.ErrAbsenceRequestNotFound
		}
		return absence.AbsenceResponse{}, fmt.Errorf("failed to get absence request: %w", err)
	}
	return mapAbsenceToResponse(req), nil
}

// ApproveAbsence implements absence.AbsenceService.
func (s *AbsenceServiceImpl) ApproveAbsence(ctx context.Context, id string) (absence.AbsenceResponse, error) {
	return s.transition(ctx, id, absence.StatusApprouve)
}

// RejectAbsence implements absence.AbsenceService.
func (s *AbsenceServiceImpl) RejectAbsence(ctx context.Context, id string) (absence.AbsenceResponse, error) {
	return s.transition(ctx, id, absence.StatusRejete)
}

func (s *AbsenceServiceImpl) transition(ctx context.Context, id string, statut absence.RequestStatus) (absence.AbsenceResponse, error) {
	current, err := s.AbsenceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, absence.ErrAbsenceRequestNotFound) {
			return absence.AbsenceResponse{}, absence.ErrAbsenceRequestNotFound
		}
		return absence.AbsenceResponse{}, fmt.Errorf("failed to get absence request: %w", err)
	}

	if current.Statut != absence.StatusEnAttente {
		return absence.AbsenceResponse{}, absence.ErrAbsenceRequestAlreadyProcessed
	}

	updated, err := s.AbsenceRepository.SetStatus(ctx, id, statut)
	if err != nil {
		return absence.AbsenceResponse{}, fmt.Errorf("failed to update absence request status: %w", err)
	}

	return mapAbsenceToResponse(updated), nil
}

func mapAbsenceToResponse(r absence.AbsenceRequest) absence.AbsenceResponse {
	return absence.AbsenceResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Type:      r.Type,
		DateDebut: r.DateDebut.Format("2006-01-02"),
		DateFin:   r.DateFin.Format("2006-01-02"),
		Motif:     r.Motif,
		Statut:    string(r.Statut),
		CreatedAt: r.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: r.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
