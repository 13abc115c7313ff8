package domain

import "errors"

// Sentinel errors surfaced by the services. Handlers match them with
// errors.Is and map them to HTTP status codes; anything else is a 500.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrValidation        = errors.New("invalid input")
	ErrDuplicate         = errors.New("already in use")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrBadCreds          = errors.New("login or password are incorrect")
)
