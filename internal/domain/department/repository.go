package department

import "context"

type DepartementRepository interface {
	GetByID(ctx context.Context, id string) (Departement, error)
	List(ctx context.Context) ([]Departement, error)
}
