package service

import (
	"errors"
	"fmt"
)

var (
	// ErrProfileNotFound is returned when no profile has the requested id
	ErrProfileNotFound = errors.New("profile not found")

	// ErrDuplicateProfile is returned when a profile id is already taken
	ErrDuplicateProfile = errors.New("profile id already exists")
)

// PersistenceParseError indicates a slot held data that could not be decoded.
// Load paths log it and fall back to empty or default values.
type PersistenceParseError struct {
	Slot string
	Err  error
}

func (e *PersistenceParseError) Error() string {
	return fmt.Sprintf("slot %s is unreadable: %v", e.Slot, e.Err)
}

func (e *PersistenceParseError) Unwrap() error {
	return e.Err
}
