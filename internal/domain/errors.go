package domain

import "errors"

// Error kinds. Delivery maps them to HTTP status codes with errors.Is.
var (
	// ErrValidation marks missing or malformed input. Maps to 400.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks an id that matched nothing. Maps to 404.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a duplicate name or a delete of a referenced entity. Maps to 400.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized marks missing credentials or a failed login. Maps to 401.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden marks a session token that failed verification. Maps to 403.
	ErrForbidden = errors.New("forbidden")
)

// Error carries a client-facing message together with its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func NewValidationError(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

func NewNotFoundError(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func NewConflictError(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

func NewUnauthorizedError(message string) error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

func NewForbiddenError(message string) error {
	return &Error{Kind: ErrForbidden, Message: message}
}
