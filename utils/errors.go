package utils

import "errors"

// Error kinds shared across services. Services wrap these with
// fmt.Errorf("%w: ...") so handlers can map them to HTTP statuses with
// errors.Is without inspecting message text.
var (
	// ErrNotFound marks a missing tenant, patient, or user.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks duplicate link attempts and already-merged records.
	ErrConflict = errors.New("conflict")
	// ErrValidation marks rejected input, self-merge, and cross-tenant merges.
	ErrValidation = errors.New("validation failed")
)
