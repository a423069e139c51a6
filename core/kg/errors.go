package kg

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials is returned by NewClient when no API key is configured.
	ErrMissingCredentials = errors.New("missing api key")
	// ErrNotFound is returned when an entity does not exist in the graph.
	ErrNotFound = errors.New("entity not found")
	// ErrRemoteUnavailable covers transport failures and 5xx responses.
	ErrRemoteUnavailable = errors.New("remote unavailable")
	// ErrRemoteRejected covers 4xx responses and GraphQL errors.
	ErrRemoteRejected = errors.New("remote rejected request")
)

const maxErrorBody = 512

// APIError describes a failed call to the graph API.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

func statusError(op string, status int, body []byte) *APIError {
	kind := ErrRemoteRejected
	if status >= 500 {
		kind = ErrRemoteUnavailable
	}
	text := string(body)
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "..."
	}
	return &APIError{Op: op, StatusCode: status, Body: text, Err: kind}
}
