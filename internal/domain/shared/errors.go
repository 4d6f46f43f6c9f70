// Package shared contains common domain types and errors used across all
// domain packages. This package has zero external dependencies beyond uuid.
package shared

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// ErrNotFound - requested identifier does not resolve to an existing
	// entity of the expected kind.
	ErrNotFound = errors.New("entity not found")

	// ErrAlreadyExists - an entity with the same identifier is already stored.
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrUnauthorized - the acting user lacks the role or ownership
	// relationship required by the operation.
	ErrUnauthorized = errors.New("user unauthorized")

	// ErrInvalidState - the operation is forbidden by the entity's current
	// state (e.g. updating a closed report).
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidArgument - a discriminator or argument value did not match
	// any recognized case. A defect in the caller, surfaced rather than
	// silently ignored.
	ErrInvalidArgument = errors.New("invalid argument")
)

// NotFoundError carries the entity kind and identifier that failed to
// resolve, so callers can render a precise message.
type NotFoundError struct {
	Kind string
	ID   uuid.UUID
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: not found", e.Kind, e.ID)
}

// Is implements errors.Is() matching against ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFound creates a NotFoundError for the given entity kind and id.
func NewNotFound(kind string, id uuid.UUID) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// UnauthorizedError explains which permission check rejected the acting user.
type UnauthorizedError struct {
	Op     string
	Reason string
}

// Error implements the error interface.
func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: unauthorized: %s", e.Op, e.Reason)
}

// Is implements errors.Is() matching against ErrUnauthorized.
func (e *UnauthorizedError) Is(target error) bool {
	return target == ErrUnauthorized
}

// NewUnauthorized creates an UnauthorizedError for the given operation.
func NewUnauthorized(op, reason string) error {
	return &UnauthorizedError{Op: op, Reason: reason}
}

// ConflictError is raised when a staged Add collides with a stored entity of
// the same identifier. Duplicate identifiers are a caller defect.
type ConflictError struct {
	Kind string
	ID   uuid.UUID
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s: already exists", e.Kind, e.ID)
}

// Is implements errors.Is() matching against ErrAlreadyExists.
func (e *ConflictError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// NewConflict creates a ConflictError for the given entity kind and id.
func NewConflict(kind string, id uuid.UUID) error {
	return &ConflictError{Kind: kind, ID: id}
}

// NewInvalidState wraps ErrInvalidState with operation context.
func NewInvalidState(op, reason string) error {
	return fmt.Errorf("%s: %s: %w", op, reason, ErrInvalidState)
}

// NewInvalidArgument wraps ErrInvalidArgument with operation context.
func NewInvalidArgument(op, reason string) error {
	return fmt.Errorf("%s: %s: %w", op, reason, ErrInvalidArgument)
}

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized checks if the error is an authorization failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsInvalidState checks if the error is a forbidden-state error.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsInvalidArgument checks if the error is an unrecognized-value error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
