package company

import "errors"

var ErrSocieteNotFound = errors.New("societe not found")
