package company

import "context"

type SocieteRepository interface {
	GetByID(ctx context.Context, id string) (Societe, error)
	List(ctx context.Context) ([]Societe, error)
}
