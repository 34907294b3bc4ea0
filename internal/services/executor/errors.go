package executor

import "errors"

// Executor-related errors
var (
	// Validation errors
	ErrEmptyName    = errors.New("name cannot be empty")
	ErrNameTooLong  = errors.New("name cannot exceed 100 characters")
	ErrInvalidEmail = errors.New("invalid email address")
)
