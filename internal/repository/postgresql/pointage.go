package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atlas-rh/pointage-backend-go/internal/domain/pointage"
	"github.com/atlas-rh/pointage-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type pointageRepository struct {
	db *database.DB
}

const pointageColumns = `
	p.id, p.user_id, p.date, p.heure_entree, p.heure_sortie,
	p.statut_jour, p.overtime_hours, p.valider,
	p.created_at, p.updated_at,
	u.name || ' ' || u.prenom AS user_name,
	u.societe_id
`

func scanPointage(row pgx.Row) (pointage.Pointage, error) {
	var p pointage.Pointage
	err := row.Scan(
		&p.ID, &p.UserID, &p.Date, &p.HeureEntree, &p.HeureSortie,
		&p.StatutJour, &p.OvertimeHours, &p.Valider,
		&p.CreatedAt, &p.UpdatedAt,
		&p.UserName, &p.SocieteID,
	)
	return p, err
}

// Create implements pointage.PointageRepository.
func (r *pointageRepository) Create(ctx context.Context, newPointage pointage.Pointage) (pointage.Pointage, error) {
	q := GetQuerier(ctx, r.db)

	newPointage.ID = uuid.NewString()

	query := `
		INSERT INTO pointages (
			id, user_id, date, heure_entree, heure_sortie, statut_jour, overtime_hours, valider
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newPointage.ID,
		newPointage.UserID,
		newPointage.Date,
		newPointage.HeureEntree,
		newPointage.HeureSortie,
		newPointage.StatutJour,
		newPointage.OvertimeHours,
		newPointage.Valider,
	).Scan(&newPointage.CreatedAt, &newPointage.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return pointage.Pointage{}, pointage.ErrDuplicatePointage
		}
		return pointage.Pointage{}, fmt.Errorf("failed to create pointage: %w", err)
	}

	return newPointage, nil
}

// GetByID implements pointage.PointageRepository.
func (r *pointageRepository) GetByID(ctx context.Context, id string) (pointage.Pointage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + pointageColumns + `
		FROM pointages p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`

	p, err := scanPointage(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return pointage.Pointage{}, pointage.ErrPointageNotFound
		}
		return pointage.Pointage{}, fmt.Errorf("failed to get pointage by id: %w", err)
	}

	return p, nil
}

// GetByUserAndDate implements pointage.PointageRepository.
func (r *pointageRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*pointage.Pointage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + pointageColumns + `
		FROM pointages p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
		  AND p.date = $2
		LIMIT 1
	`

	p, err := scanPointage(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // no record for that day yet
		}
		return nil, fmt.Errorf("failed to get pointage by user and date: %w", err)
	}

	return &p, nil
}

// Update implements pointage.PointageRepository.
func (r *pointageRepository) Update(ctx context.Context, updated pointage.Pointage) (pointage.Pointage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE pointages SET
			heure_entree = $2,
			heure_sortie = $3,
			statut_jour = $4,
			overtime_hours = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		updated.ID,
		updated.HeureEntree,
		updated.HeureSortie,
		updated.StatutJour,
		updated.OvertimeHours,
	).Scan(&updated.CreatedAt, &updated.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return pointage.Pointage{}, pointage.ErrPointageNotFound
		}
		return pointage.Pointage{}, fmt.Errorf("failed to update pointage: %w", err)
	}

	return updated, nil
}

// UpdateMany implements pointage.PointageRepository. The rows are written in
// a single transaction so a failing row rolls back the whole batch.
func (r *pointageRepository) UpdateMany(ctx context.Context, pointages []pointage.Pointage) ([]pointage.Pointage, error) {
	updated := make([]pointage.Pointage, 0, len(pointages))

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		for _, p := range pointages {
			saved, err := r.Update(txCtx, p)
			if err != nil {
				return err
			}
			updated = append(updated, saved)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// List implements pointage.PointageRepository.
func (r *pointageRepository) List(ctx context.Context, filter pointage.PointageFilter) ([]pointage.Pointage, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND p.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND p.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.StatutJour != nil && *filter.StatutJour != "" {
		baseWhere += fmt.Sprintf(" AND p.statut_jour = $%d", argIdx)
		args = append(args, *filter.StatutJour)
		argIdx++
	}
	if filter.SocieteID != nil && *filter.SocieteID != "" {
		baseWhere += fmt.Sprintf(" AND u.societe_id = $%d", argIdx)
		args = append(args, *filter.SocieteID)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM pointages p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count pointages: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	offset := (page - 1) * limit

	selectQuery := fmt.Sprintf(`
		SELECT `+pointageColumns+`
		FROM pointages p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE %s
		ORDER BY p.date DESC, u.name ASC, u.prenom ASC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pointages: %w", err)
	}
	defer rows.Close()

	var pointages []pointage.Pointage
	for rows.Next() {
		p, err := scanPointage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan pointage: %w", err)
		}
		pointages = append(pointages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate pointages: %w", err)
	}

	return pointages, total, nil
}

// ListByDate implements pointage.PointageRepository.
func (r *pointageRepository) ListByDate(ctx context.Context, date time.Time) ([]pointage.Pointage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + pointageColumns + `
		FROM pointages p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE p.date = $1
		ORDER BY u.name ASC, u.prenom ASC
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list pointages by date: %w", err)
	}
	defer rows.Close()

	var pointages []pointage.Pointage
	for rows.Next() {
		p, err := scanPointage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pointage: %w", err)
		}
		pointages = append(pointages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pointages: %w", err)
	}

	return pointages, nil
}

// ListByIDs implements pointage.PointageRepository.
func (r *pointageRepository) ListByIDs(ctx context.Context, ids []string) ([]pointage.Pointage, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + pointageColumns + `
		FROM pointages p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE p.id = ANY($1)
		ORDER BY p.id ASC
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list pointages by ids: %w", err)
	}
	defer rows.Close()

	var pointages []pointage.Pointage
	for rows.Next() {
		p, err := scanPointage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pointage: %w", err)
		}
		pointages = append(pointages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pointages: %w", err)
	}

	return pointages, nil
}

// SetValidated implements pointage.PointageRepository.
func (r *pointageRepository) SetValidated(ctx context.Context, id string, validated bool) (pointage.Pointage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE pointages SET
			valider = $2,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id, validated).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return pointage.Pointage{}, pointage.ErrPointageNotFound
		}
		return pointage.Pointage{}, fmt.Errorf("failed to set pointage validation: %w", err)
	}

	return r.GetByID(ctx, updatedID)
}

// DeleteByIDs implements pointage.PointageRepository.
func (r *pointageRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM pointages WHERE id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("failed to delete pointages: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pointage.ErrPointageNotFound
	}

	return nil
}

func NewPointageRepository(db *database.DB) pointage.PointageRepository {
	return &pointageRepository{db: db}
}
