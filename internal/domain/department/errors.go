package department

import "errors"

var ErrDepartementNotFound = errors.New("departement not found")
