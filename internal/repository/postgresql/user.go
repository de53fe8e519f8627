package postgresql

import (
	"context"
	"fmt"

	"github.com/atlas-rh/pointage-backend-go/internal/domain/user"
	"github.com/atlas-rh/pointage-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	db *database.DB
}

const userColumns = `
	u.id, u.name, u.prenom, u.email, u.password_hash,
	u.role, u.statut, u.departement_id, u.societe_id,
	u.created_at, u.updated_at,
	d.nom AS departement_nom,
	s.nom AS societe_nom
`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Prenom, &u.Email, &u.PasswordHash,
		&u.Role, &u.Statut, &u.DepartementID, &u.SocieteID,
		&u.CreatedAt, &u.UpdatedAt,
		&u.DepartementNom, &u.SocieteNom,
	)
	return u, err
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN departements d ON d.id = u.departement_id
		LEFT JOIN societes s ON s.id = u.societe_id
		WHERE u.id = $1
	`

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN departements d ON d.id = u.departement_id
		LEFT JOIN societes s ON s.id = u.societe_id
		WHERE LOWER(u.email) = LOWER($1)
	`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// ListActive implements user.UserRepository.
func (r *userRepository) ListActive(ctx context.Context, filter user.RosterFilter) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "u.statut <> 'Inactif'"
	args := []interface{}{}
	argIdx := 1

	if filter.SocieteID != nil && *filter.SocieteID != "" {
		baseWhere += fmt.Sprintf(" AND u.societe_id = $%d", argIdx)
		args = append(args, *filter.SocieteID)
		argIdx++
	}
	if filter.DepartementID != nil && *filter.DepartementID != "" {
		baseWhere += fmt.Sprintf(" AND u.departement_id = $%d", argIdx)
		args = append(args, *filter.DepartementID)
		argIdx++
	}
	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND u.id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT `+userColumns+`
		FROM users u
		LEFT JOIN departements d ON d.id = u.departement_id
		LEFT JOIN societes s ON s.id = u.societe_id
		WHERE %s
		ORDER BY u.name ASC, u.prenom ASC
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// List implements user.UserRepository.
func (r *userRepository) List(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN departements d ON d.id = u.departement_id
		LEFT JOIN societes s ON s.id = u.societe_id
		ORDER BY u.name ASC, u.prenom ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}
