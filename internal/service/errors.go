package service

import "errors"

// Failure taxonomy surfaced to the HTTP layer. Source availability problems
// never reach here; the fallback chain absorbs them.
var (
	// ErrNotFound means the id is absent from the full row-set.
	ErrNotFound = errors.New("record not found")
	// ErrAccessDenied means the record exists but is outside the caller's
	// partition. Deliberately distinct from ErrNotFound.
	ErrAccessDenied = errors.New("access denied")
	// ErrValidation means a write is missing a required field.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials is returned for any login failure; it does not
	// distinguish unknown email from wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
