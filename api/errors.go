package api

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid api configuration")
	// ErrNoConnection indicates the request never produced a response
	ErrNoConnection = errors.New("failed to reach streaming service")
)

// APIError represents a non-2xx response from the streaming service
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized checks if the error indicates an authorization failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsValidation checks if the error carries a server-side validation message
// (any 4xx other than an authorization failure)
func (e *APIError) IsValidation() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.StatusCode != 401
}

// IsServerError checks if the error indicates a backend failure
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// ErrorMessage extracts a user-displayable message from any error returned
// by the client. Validation failures surface the server's message verbatim;
// everything else gets the fallback.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsNetworkError reports whether the request failed before any response
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNoConnection)
}
