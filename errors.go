package mengram

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is the single error type surfaced by every remote call.
//
// Status carries the HTTP status of the failed response, with two
// reserved values: 0 means the request never completed (network
// failure), 408 means the request or a job wait exceeded its deadline.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	switch e.Status {
	case 0:
		return fmt.Sprintf("mengram: network error: %s", e.Message)
	case http.StatusRequestTimeout:
		return fmt.Sprintf("mengram: timeout: %s", e.Message)
	default:
		return fmt.Sprintf("mengram: %s (status=%d)", e.Message, e.Status)
	}
}

func newTransportError(err error) *APIError {
	return &APIError{Status: 0, Message: err.Error()}
}

func newTimeoutError(message string) *APIError {
	return &APIError{Status: http.StatusRequestTimeout, Message: message}
}

// apiStatus extracts the status code from err, or -1 when err is not an APIError.
func apiStatus(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return -1
}

// IsTransport reports whether err is a network-level failure: the
// request never produced an HTTP response.
func IsTransport(err error) bool {
	return apiStatus(err) == 0
}

// IsTimeout reports whether err is a request or job-wait deadline expiry.
func IsTimeout(err error) bool {
	return apiStatus(err) == http.StatusRequestTimeout
}

// IsAuthError reports whether the service rejected the credential (401 or 403).
func IsAuthError(err error) bool {
	s := apiStatus(err)
	return s == http.StatusUnauthorized || s == http.StatusForbidden
}

// IsNotFound reports whether the requested resource does not exist (404).
func IsNotFound(err error) bool {
	return apiStatus(err) == http.StatusNotFound
}

// IsServerError reports whether the service itself failed (5xx).
func IsServerError(err error) bool {
	return apiStatus(err) >= 500
}
