package repository

import "errors"

// Common repository errors
var (
	// ErrBoardNotFound is returned when a board is not found
	ErrBoardNotFound = errors.New("board not found")

	// ErrStatusNotFound is returned when a board status is not found
	ErrStatusNotFound = errors.New("status not found")

	// ErrTaskNotFound is returned when a task is not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrMemberNotFound is returned when a board membership row is not found
	ErrMemberNotFound = errors.New("board member not found")
)
