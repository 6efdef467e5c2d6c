package model

import "errors"

// Sentinel error kinds. Store and service code wraps these with context via
// fmt.Errorf("...: %w", Err...); the HTTP boundary maps each kind to a status
// code. Anything that does not match a kind is treated as internal.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)
