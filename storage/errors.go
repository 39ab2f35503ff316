package storage

import (
	"errors"
)

var (
	// ErrNotFound is returned when a header is not known to the store. This
	// is an expected outcome while data is still propagating through header
	// sync; callers must treat it as non-fatal.
	ErrNotFound = errors.New("key not found")

	// ErrAlreadyExists is returned when inserting a key that is already
	// present with different data.
	ErrAlreadyExists = errors.New("key already exists")
)
