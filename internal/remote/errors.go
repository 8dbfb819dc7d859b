package remote

import (
	"errors"
	"strconv"
)

var (
	// ErrUnavailable indicates the backend is unreachable.
	ErrUnavailable = errors.New("remote backend unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("remote request timed out")

	// ErrNotFound indicates the backend answered 404 for the resource.
	ErrNotFound = errors.New("remote resource not found")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("remote retry attempts exhausted")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return "backend returned status " + strconv.Itoa(e.Code)
	}
	return "backend returned status " + strconv.Itoa(e.Code) + ": " + e.Body
}

func (e *StatusError) retryable() bool {
	return e.Code >= 500
}
