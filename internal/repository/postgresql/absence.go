package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/atlas-rh/pointage-backend-go/internal/domain/absence"
	"github.com/atlas-rh/pointage-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type absenceRepository struct {
	db *database.DB
}

const absenceColumns = `
	a.id, a.user_id, a.type, a.date_debut, a.date_fin,
	a.motif, a.statut, a.created_at, a.updated_at,
	u.name || ' ' || u.prenom AS user_name
`

func scanAbsence(row pgx.Row) (absence.AbsenceRequest, error) {
	var r absence.AbsenceRequest
	err := row.Scan(
		&r.ID, &r.UserID, &r.Type, &r.DateDebut, &r.DateFin,
		&r.Motif, &r.Statut, &r.CreatedAt, &r.UpdatedAt,
		&r.UserName,
	)
	return r, err
}

// Create implements absence.AbsenceRepository.
func (r *absenceRepository) Create(ctx context.Context, newRequest absence.AbsenceRequest) (absence.AbsenceRequest, error) {
	q := GetQuerier(ctx, r.db)

	newRequest.ID = uuid.NewString()

	query := `
		INSERT INTO absence_requests (
			id, user_id, type, date_debut, date_fin, motif, statut
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newRequest.ID,
		newRequest.UserID,
		newRequest.Type,
		newRequest.DateDebut,
		newRequest.DateFin,
		newRequest.Motif,
		newRequest.Statut,
	).Scan(&newRequest.CreatedAt, &newRequest.UpdatedAt)

	if err != nil {
		return absence.AbsenceRequest{}, fmt.Errorf("failed to create absence request: %w", err)
	}

	return newRequest, nil
}

// GetByID implements absence.AbsenceRepository.
func (r *absenceRepository) GetByID(ctx context.Context, id string) (absence.AbsenceRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + absenceColumns + `
		FROM absence_requests a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`

	req, err := scanAbsence(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return absence.AbsenceRequest{}, absence.ErrAbsenceRequestNotFound
		}
		return absence.AbsenceRequest{}, fmt.Errorf("failed to get absence request by id: %w", err)
	}

	return req, nil
}

// List implements absence.AbsenceRepository.
func (r *absenceRepository) List(ctx context.Context, filter absence.AbsenceFilter) ([]absence.AbsenceRequest, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND a.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.Statut != nil && *filter.Statut != "" {
		baseWhere += fmt.Sprintf(" AND a.statut = $%d", argIdx)
		args = append(args, *filter.Statut)
		argIdx++
	}
	if filter.Type != nil && *filter.Type != "" {
		baseWhere += fmt.Sprintf(" AND a.type = $%d", argIdx)
		args = append(args, *filter.Type)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT `+absenceColumns+`
		FROM absence_requests a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE %s
		ORDER BY a.created_at DESC
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list absence requests: %w", err)
	}
	defer rows.Close()

	var requests []absence.AbsenceRequest
	for rows.Next() {
		req, err := scanAbsence(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan absence request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate absence requests: %w", err)
	}

	return requests, nil
}

// ListApprovedCovering implements absence.AbsenceRepository.
func (r *absenceRepository) ListApprovedCovering(ctx context.Context, date time.Time) ([]absence.AbsenceRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + absenceColumns + `
		FROM absence_requests a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.statut IN ('validé', 'approuvé')
		  AND a.date_debut <= $1
		  AND a.date_fin >= $1
		ORDER BY a.created_at ASC
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list covering absence requests: %w", err)
	}
	defer rows.Close()

	var requests []absence.AbsenceRequest
	for rows.Next() {
		req, err := scanAbsence(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan absence request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate absence requests: %w", err)
	}

	return requests, nil
}

// SetStatus implements absence.AbsenceRepository.
func (r *absenceRepository) SetStatus(ctx context.Context, id string, statut absence.RequestStatus) (absence.AbsenceRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE absence_requests SET
			statut = $2,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id, statut).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return absence.AbsenceRequest{}, absence.ErrAbsenceRequestNotFound
		}
		return absence.AbsenceRequest{}, fmt.Errorf("failed to update absence request status: %w", err)
	}

	return r.GetByID(ctx, updatedID)
}

func NewAbsenceRepository(db *database.DB) absence.AbsenceRepository {
	return &absenceRepository{db: db}
}
