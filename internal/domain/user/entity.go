package user

import "time"

type Role string

const (
	RoleEmploye    Role = "Employe"     // Regular employee
	RoleChefDep    Role = "Chef_Dep"    // Department head - can validate pointages
	RoleRH         Role = "RH"          // HR - can validate and invalidate pointages
	RoleChefProjet Role = "Chef_Projet" // Project lead - can validate pointages
)

type Status string

const (
	StatusActif   Status = "Actif"
	StatusInactif Status = "Inactif"
	StatusConge   Status = "Congé"
	StatusMalade  Status = "Malade"
)

type User struct {
	ID            string
	Name          string
	Prenom        string
	Email         string
	PasswordHash  *string
	Role          Role
	Statut        Status
	DepartementID *string
	SocieteID     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO / Join
	DepartementNom *string
	SocieteNom     *string
}

// IsElevated reports whether the role may validate pointages.
func (r Role) IsElevated() bool {
	return r == RoleRH || r == RoleChefDep || r == RoleChefProjet
}

// CanInvalidate reports whether the role may invalidate a validated pointage.
// Only RH has that privilege.
func (r Role) CanInvalidate() bool {
	return r == RoleRH
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleEmploye, RoleChefDep, RoleRH, RoleChefProjet:
		return true
	}
	return false
}

// IsActive reports whether the user should appear in attendance rosters.
func (u *User) IsActive() bool {
	return u.Statut != StatusInactif
}

// FullName returns "Name Prenom" the way rosters display it.
func (u *User) FullName() string {
	return u.Name + " " + u.Prenom
}
