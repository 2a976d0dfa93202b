package gateway

import (
	"errors"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrNotFound is returned when a looked up row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("record already exists")
	// ErrForeignKeysDisabled is returned when the store does not enforce foreign keys.
	ErrForeignKeysDisabled = errors.New("foreign key enforcement is disabled")
)
