package participant

import "errors"

var (
	// ErrNilInput is returned when an input or its participant is missing
	ErrNilInput = errors.New("input and participant cannot be nil")

	// ErrEmptyID is returned when a participant has no ID
	ErrEmptyID = errors.New("participant ID cannot be empty")
)
