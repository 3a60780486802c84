package shared

import "errors"

var (
	// ErrNotFound indicates the target identifier is absent from a registry.
	ErrNotFound = errors.New("not found")
	// ErrForbidden indicates an invariant blocks the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrDuplicateKey indicates a permission key collision.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrValidation indicates malformed or incomplete input.
	ErrValidation = errors.New("validation failed")
)
