package postgresql

import (
	"context"
	"fmt"

	"github.com/atlas-rh/pointage-backend-go/internal/domain/department"
	"github.com/atlas-rh/pointage-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type departementRepository struct {
	db *database.DB
}

// GetByID implements department.DepartementRepository.
func (r *departementRepository) GetByID(ctx context.Context, id string) (department.Departement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, nom, description, societe_id, created_at, updated_at
		FROM departements
		WHERE id = $1
	`

	var d department.Departement
	err := q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Nom, &d.Description, &d.SocieteID, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return department.Departement{}, department.ErrDepartementNotFound
		}
		return department.Departement{}, fmt.Errorf("failed to get departement by id: %w", err)
	}

	return d, nil
}

// List implements department.DepartementRepository.
func (r *departementRepository) List(ctx context.Context) ([]department.Departement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, nom, description, societe_id, created_at, updated_at
		FROM departements
		ORDER BY nom ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list departements: %w", err)
	}
	defer rows.Close()

	var departements []department.Departement
	for rows.Next() {
		var d department.Departement
		if err := rows.Scan(
			&d.ID, &d.Nom, &d.Description, &d.SocieteID, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan departement: %w", err)
		}
		departements = append(departements, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate departements: %w", err)
	}

	return departements, nil
}

func NewDepartementRepository(db *database.DB) department.DepartementRepository {
	return &departementRepository{db: db}
}
