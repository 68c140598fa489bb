package errors

import "fmt"

// ErrorCode represents a Hookline error code.
type ErrorCode string

const (
	ErrInvalidRequest      ErrorCode = "INVALID_REQUEST"      // 400
	ErrInsufficientCredits ErrorCode = "INSUFFICIENT_CREDITS" // 402
	ErrNotFound            ErrorCode = "NOT_FOUND"            // 404
	ErrUserExists          ErrorCode = "USER_EXISTS"          // 409
	ErrPersistenceFailure  ErrorCode = "PERSISTENCE_FAILURE"  // 500
	ErrGatewayFailure      ErrorCode = "GATEWAY_FAILURE"      // 502
	ErrInternal            ErrorCode = "INTERNAL"             // 500
)

// Error represents a structured error with code, status, and details.
type Error struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *Error {
	return &Error{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewInsufficientCredits creates a 402 error for a debit that would overdraw
// a user's balance. No partial charge is ever applied.
func NewInsufficientCredits(username string, need, have int) *Error {
	return &Error{
		Code:    ErrInsufficientCredits,
		Status:  402,
		Message: fmt.Sprintf("insufficient credits for %q: need %d, have %d", username, need, have),
		Details: map[string]any{"username": username, "need": need, "have": have},
	}
}

// NewNotFound creates a 404 error for an unknown user, conversation, or index.
func NewNotFound(identifier string) *Error {
	return &Error{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewUserExists creates a 409 error for username collisions.
func NewUserExists(username string) *Error {
	return &Error{
		Code:    ErrUserExists,
		Status:  409,
		Message: fmt.Sprintf("user %q already exists", username),
		Details: map[string]any{"username": username},
	}
}

// NewPersistenceFailure creates a 500 error for a failed document write.
// In-memory state must not be assumed committed when this is returned.
func NewPersistenceFailure(err error) *Error {
	msg := "persistence failure"
	if err != nil {
		msg = fmt.Sprintf("persistence failure: %v", err)
	}
	return &Error{
		Code:    ErrPersistenceFailure,
		Status:  500,
		Message: msg,
	}
}

// NewGatewayFailure creates a 502 error for a generation that produced no
// usable text (missing configuration, upstream error, or empty result).
func NewGatewayFailure(msg string) *Error {
	return &Error{
		Code:    ErrGatewayFailure,
		Status:  502,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *Error {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a Hookline Error with the given code.
func Is(err error, code ErrorCode) bool {
	if hErr, ok := err.(*Error); ok {
		return hErr.Code == code
	}
	return false
}
