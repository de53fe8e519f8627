package user

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrElevatedRoleRequired = errors.New("this operation requires RH, Chef_Dep or Chef_Projet role")
	ErrRHRoleRequired       = errors.New("this operation requires RH role")
	ErrInvalidRole          = errors.New("invalid role")
)
