package domain

import "errors"

// Error taxonomy shared by services and mapped to HTTP codes at the boundary.
var (
	// ErrValidation marks a missing or malformed required field.
	ErrValidation = errors.New("invalid input")
	// ErrUnauthorized marks a request with no authenticated owner, or
	// credentials that do not match.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict marks a duplicate unique key: username at registration,
	// PNR collision at booking. The caller may retry.
	ErrConflict = errors.New("conflict")
	// ErrNotFound marks a lookup miss. Ownership mismatches report the same
	// error so foreign PNRs are indistinguishable from absent ones.
	ErrNotFound = errors.New("not found")
)
