package models

import "errors"

// Error kinds returned by the service layer. Handlers map these onto HTTP
// status codes in one place; anything unrecognized is treated as internal.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
	ErrUnauthorized = errors.New("unauthorized")
	ErrTransient    = errors.New("transient failure, retry")
)
