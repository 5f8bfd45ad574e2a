package reviews

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the reviews client.
var (
	// ErrNetworkError indicates the request never produced an HTTP response.
	ErrNetworkError = errors.New("network error communicating with the reviews API")

	// ErrInvalidResponse indicates a 200 response whose body could not be decoded.
	ErrInvalidResponse = errors.New("invalid response from the reviews API")
)

// APIError is returned for any response whose status is not 200 OK.
// Body holds the raw response body, unmodified.
type APIError struct {
	StatusCode int
	Body       string
	Method     string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d - %s", e.StatusCode, e.Body)
}

// IsNotFound returns true if the error is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsAuthError returns true if the API rejected the configured key.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}
