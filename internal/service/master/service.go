package master

import (
	"context"
	"fmt"

	"github.com/atlas-rh/pointage-backend-go/internal/domain/company"
	"github.com/atlas-rh/pointage-backend-go/internal/domain/department"
	"github.com/atlas-rh/pointage-backend-go/internal/domain/user"
)

// MasterService serves the reference data the dashboard filters on: users,
// departements and sociétés.
type MasterService interface {
	ListUsers(ctx context.Context) ([]UserResponse, error)
	ListDepartements(ctx context.Context) ([]DepartementResponse, error)
	ListSocietes(ctx context.Context) ([]SocieteResponse, error)
}

type UserResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Prenom        string  `json:"prenom"`
	Email         string  `json:"email"`
	Role          string  `json:"role"`
	Statut        string  `json:"statut"`
	DepartementID *string `json:"departement_id,omitempty"`
	SocieteID     *string `json:"societe_id,omitempty"`
}

type DepartementResponse struct {
	ID        string  `json:"id"`
	Nom       string  `json:"nom"`
	SocieteID *string `json:"societe_id,omitempty"`
}

type SocieteResponse struct {
	ID  string `json:"id"`
	Nom string `json:"nom"`
}

type MasterServiceImpl struct {
	user.UserRepository
	department.DepartementRepository
	company.SocieteRepository
}

func NewMasterService(
	userRepo user.UserRepository,
	departementRepo department.DepartementRepository,
	societeRepo company.SocieteRepository,
) MasterService {
	return &MasterServiceImpl{
		UserRepository:        userRepo,
		DepartementRepository: departementRepo,
		SocieteRepository:     societeRepo,
	}
}

// ListUsers implements MasterService.
func (s *MasterServiceImpl) ListUsers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, UserResponse{
			ID:            u.ID,
			Name:          u.Name,
			Prenom:        u.Prenom,
			Email:         u.Email,
			Role:          string(u.Role),
			Statut:        string(u.Statut),
			DepartementID: u.DepartementID,
			SocieteID:     u.SocieteID,
		})
	}
	return responses, nil
}

// ListDepartements implements MasterService.
func (s *MasterServiceImpl) ListDepartements(ctx context.Context) ([]DepartementResponse, error) {
	departements, err := s.DepartementRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departements: %w", err)
	}

	responses := make([]DepartementResponse, 0, len(departements))
	for _, d := range departements {
		responses = append(responses, DepartementResponse{
			ID:        d.ID,
			Nom:       d.Nom,
			SocieteID: d.SocieteID,
		})
	}
	return responses, nil
}

// ListSocietes implements MasterService.
func (s *MasterServiceImpl) ListSocietes(ctx context.Context) ([]SocieteResponse, error) {
	societes, err := s.SocieteRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list societes: %w", err)
	}

	responses := make([]SocieteResponse, 0, len(societes))
	for _, c := range societes {
		responses = append(responses, SocieteResponse{
			ID:  c.ID,
			Nom: c.Nom,
		})
	}
	return responses, nil
}
