package store

import "errors"

// Sentinel errors returned by the stores. Handlers match with errors.Is and
// map each one to a user-visible response; none of these should ever escape a
// handler.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation failed")
	ErrEmptyText          = errors.New("empty text")
	ErrDuplicateName      = errors.New("name already taken")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
)
