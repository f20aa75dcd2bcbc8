package repository

import "errors"

var (
	// ErrNotFound signals that the referenced row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate signals a unique constraint violation.
	ErrDuplicate = errors.New("duplicate record")
)
