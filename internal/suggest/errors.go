package suggest

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyAppName is returned for a blank application name
	ErrEmptyAppName = errors.New("application name is required")

	// ErrNoResponse is returned when the remote service produced no text
	ErrNoResponse = errors.New("no response from suggestion service")

	// ErrIncomplete is returned when the remote answer lacks a description or
	// a usable device identity
	ErrIncomplete = errors.New("incomplete suggestion")

	errUnknown = errors.New("unknown failure")
)

// SuggestionError describes a failed suggestion request
type SuggestionError struct {
	Op      string
	AppName string
	Err     error
}

func (e *SuggestionError) Error() string {
	if e.AppName == "" {
		return fmt.Sprintf("suggest %s: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("suggest %s for %q: %v", e.Op, e.AppName, e.Err)
}

func (e *SuggestionError) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx answer from the remote service
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}

	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}
