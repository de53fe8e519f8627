package company

import "time"

type Societe struct {
	ID        string
	Nom       string
	Adresse   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
