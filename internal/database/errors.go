package database

import "errors"

// Sentinel errors shared by all repositories. Callers classify failures
// with errors.Is; anything not matching these is a storage-level failure.
var (
	// ErrInvalidInput marks a rejected request: empty required field,
	// zero id, or a malformed discriminator combination.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a lookup that matched no row.
	ErrNotFound = errors.New("not found")
)
