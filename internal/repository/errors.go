package repository

import "errors"

var (
	// ErrNotFound is returned when a requested document doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a conditional write finds a newer version
	ErrConflict = errors.New("conflict: document was modified by another writer")

	// ErrForeignKeyViolation is returned when a parent document is missing
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrDuplicate is returned when a document ID is already taken
	ErrDuplicate = errors.New("duplicate document id")
)
