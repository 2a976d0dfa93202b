package membership

import "errors"

var (
	// ErrUserNotFound is returned when a referenced userid does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrGroupNotFound is returned when a referenced group does not exist.
	ErrGroupNotFound = errors.New("group not found")
	// ErrUserExists is returned when creating a userid that is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrGroupExists is returned when creating a group name that is already taken.
	ErrGroupExists = errors.New("group already exists")
	// ErrValidation is returned when input does not satisfy the user schema or names unknown groups.
	ErrValidation = errors.New("validation failed")
)
