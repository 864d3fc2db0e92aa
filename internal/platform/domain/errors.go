package domain

import "fmt"

// ErrorCode classifies domain errors for transport-level mapping.
type ErrorCode string

const (
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeValidation        ErrorCode = "VALIDATION_ERROR"
	CodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	CodeInvalidOperation  ErrorCode = "INVALID_OPERATION"
	CodeNotCancellable    ErrorCode = "NOT_CANCELLABLE"
	CodeConflict          ErrorCode = "CONFLICT"
	CodeForbidden         ErrorCode = "FORBIDDEN"
	CodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	CodeRateLimited       ErrorCode = "RATE_LIMITED"
)

// DomainError is the common error type returned by domain and application code.
type DomainError struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return e.Message
}

// NewNotFoundError creates an error for a missing entity.
func NewNotFoundError(entity, id string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", entity, id),
	}
}

// NewValidationError creates an error for invalid input.
func NewValidationError(message string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: message}
}

// NewInvalidTransitionError creates an error for a disallowed status transition.
func NewInvalidTransitionError(from, to string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("invalid transition from %s to %s", from, to),
	}
}

// NewInvalidOperationError creates an error for an operation the current state forbids.
func NewInvalidOperationError(message string) *DomainError {
	return &DomainError{Code: CodeInvalidOperation, Message: message}
}

// NewNotCancellableError creates an error for a cancellation refused by policy.
func NewNotCancellableError(status string) *DomainError {
	return &DomainError{
		Code:    CodeNotCancellable,
		Message: fmt.Sprintf("booking in status %s cannot be cancelled", status),
	}
}

// NewConflictError creates an error for a write that lost an optimistic-lock race.
func NewConflictError(message string) *DomainError {
	return &DomainError{Code: CodeConflict, Message: message}
}

// NewForbiddenError creates an error for an authenticated but unpermitted action.
func NewForbiddenError(message string) *DomainError {
	return &DomainError{Code: CodeForbidden, Message: message}
}

// NewUnauthorizedError creates an error for a missing or invalid credential.
func NewUnauthorizedError(message string) *DomainError {
	return &DomainError{Code: CodeUnauthorized, Message: message}
}
