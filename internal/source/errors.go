package source

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionExpired is returned when any call other than Login comes back
	// with HTTP 401. The caller should re-authenticate and retry.
	ErrSessionExpired = errors.New("session expired")

	// ErrMissingIdentifier is returned when an update or delete is attempted
	// on a record without a server identifier. No network call is made.
	ErrMissingIdentifier = errors.New("record has no identifier")

	// ErrQueued is returned by CreateUser when the backend is unreachable and
	// the record was parked in the pending queue instead.
	ErrQueued = errors.New("backend unreachable, record queued locally")
)

// RequestError is a non-2xx response from the backend. Message carries the
// API envelope's message when one was decodable, or a generic fallback.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}
