package shared

import "errors"

var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate indicates a uniqueness rule was violated.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthenticated indicates a missing, invalid or expired token.
	ErrUnauthenticated = errors.New("not authorized to access this route")
	// ErrForbidden indicates a role or ownership mismatch.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUpstream indicates a store, email or file-system failure.
	ErrUpstream = errors.New("upstream failure")
)
