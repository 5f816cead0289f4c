// ABOUTME: Error types for backend responses
// ABOUTME: Distinguishes HTTP status errors from transport failures

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// errorResponse is the error envelope backends return on failure. The two
// backends disagree on the field name, so both are accepted.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e errorResponse) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// HTTPError is a non-2xx response from a backend. Message carries the
// backend-supplied error text when one was present.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusUnauthorized
}

// UserMessage extracts a user-displayable message from err, falling back to
// the given text when the backend supplied none.
func UserMessage(err error, fallback string) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Message != "" {
		return httpErr.Message
	}
	return fallback
}
