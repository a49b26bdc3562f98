package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUpstreamRequest is matched by every RequestError.
	ErrUpstreamRequest = errors.New("upstream request failed")
	// ErrMissingEventID is returned before any network call when no event id is given.
	ErrMissingEventID = errors.New("event id is required")
)

// RequestError describes a failed call to the registration provider.
// StatusCode is zero when no HTTP response was received.
type RequestError struct {
	EventID    string
	StatusCode int
	Retryable  bool
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream request for event %s failed with status %d: %v", e.EventID, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream request for event %s failed: %v", e.EventID, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func (e *RequestError) Is(target error) bool {
	return target == ErrUpstreamRequest
}

// IsNotFound reports whether the provider answered 404 for the event.
func IsNotFound(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusNotFound
}

// IsRetryable reports whether err is a transient upstream failure.
func IsRetryable(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Retryable
}

func retryableStatus(status int) bool {
	return status >= http.StatusInternalServerError || status == http.StatusTooManyRequests
}
