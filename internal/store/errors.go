package store

import "errors"

var (
	// ErrMissingField is returned by ProjectStore.Add when a required field
	// (title, description or dueDate) is empty.
	ErrMissingField = errors.New("missing required field")
)
