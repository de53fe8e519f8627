package department

import "time"

type Departement struct {
	ID          string
	Nom         string
	Description *string
	SocieteID   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
