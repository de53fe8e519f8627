package postgresql

import (
	"context"
	"fmt"

	"github.com/atlas-rh/pointage-backend-go/internal/domain/company"
	"github.com/atlas-rh/pointage-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type societeRepository struct {
	db *database.DB
}

// GetByID implements company.SocieteRepository.
func (r *societeRepository) GetByID(ctx context.Context, id string) (company.Societe, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, nom, adresse, created_at, updated_at
		FROM societes
		WHERE id = $1
	`

	var s company.Societe
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Nom, &s.Adresse, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Societe{}, company.ErrSocieteNotFound
		}
		return company.Societe{}, fmt.Errorf("failed to get societe by id: %w", err)
	}

	return s, nil
}

// List implements company.SocieteRepository.
func (r *societeRepository) List(ctx context.Context) ([]company.Societe, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, nom, adresse, created_at, updated_at
		FROM societes
		ORDER BY nom ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list societes: %w", err)
	}
	defer rows.Close()

	var societes []company.Societe
	for rows.Next() {
		var s company.Societe
		if err := rows.Scan(
			&s.ID, &s.Nom, &s.Adresse, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan societe: %w", err)
		}
		societes = append(societes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate societes: %w", err)
	}

	return societes, nil
}

func NewSocieteRepository(db *database.DB) company.SocieteRepository {
	return &societeRepository{db: db}
}
