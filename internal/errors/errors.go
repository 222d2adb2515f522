package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation is returned when a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized is returned when credentials do not match.
	ErrUnauthorized = errors.New("invalid username or password")
	// ErrNotFound is returned when a row is missing or not owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique value is already taken.
	ErrConflict = errors.New("conflict")
)

// DomainError attaches a caller-facing message to one of the error kinds above.
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is match the kind.
func (e *DomainError) Unwrap() error {
	return e.Kind
}

// Validation builds an ErrValidation with the given message.
func Validation(format string, args ...any) error {
	return &DomainError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds an ErrNotFound for the named resource, e.g. "Task not found".
func NotFound(resource string) error {
	return &DomainError{Kind: ErrNotFound, Message: resource + " not found"}
}

// Conflict builds an ErrConflict with the given message.
func Conflict(message string) error {
	return &DomainError{Kind: ErrConflict, Message: message}
}

// Unauthorized builds an ErrUnauthorized with the given message.
func Unauthorized(message string) error {
	return &DomainError{Kind: ErrUnauthorized, Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Error   string `json:"error,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Detail     string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
		Error:   e.Detail,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unclassified errors become
// a 500 carrying fallback as the message; the raw error text is attached as
// Detail only when exposeDetail is set.
func MapErrorToHTTP(err error, fallback string, exposeDetail bool) *HTTPError {
	message := err.Error()
	var de *DomainError
	if errors.As(err, &de) {
		message = de.Message
	}

	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, message, "VALIDATION_ERROR")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, message, "INVALID_CREDENTIALS")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, message, "NOT_FOUND")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, message, "CONFLICT")
	default:
		httpErr := NewHTTPError(http.StatusInternalServerError, fallback, "INTERNAL_ERROR")
		if exposeDetail {
			httpErr.Detail = err.Error()
		}
		return httpErr
	}
}
