package pointage

import "errors"

var (
	ErrPointageNotFound  = errors.New("pointage not found")
	ErrDuplicatePointage = errors.New("a pointage already exists for this user and date")

	// Save / edit errors
	ErrPointageValidated   = errors.New("pointage is validated and cannot be modified")
	ErrLeaveDrivenReadOnly = errors.New("pointage is driven by an approved absence and cannot be edited")
	ErrRoleCannotEdit      = errors.New("employees cannot edit an already saved pointage")

	// Transition errors
	ErrPointageNotPersisted    = errors.New("pointage has no id; it must be saved before validation")
	ErrPointageAlreadyValid    = errors.New("pointage is already validated")
	ErrPointageNotYetValidated = errors.New("pointage is not validated")
)
