package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict is a generic sentinel for uniqueness violations.
	ErrConflict = errors.New("conflict")
	// ErrPreconditionFailed is a generic sentinel for unmet operation preconditions.
	ErrPreconditionFailed = errors.New("precondition failed")
	// ErrExternalService is a generic sentinel for upstream provider failures.
	ErrExternalService = errors.New("external service failed")
)
