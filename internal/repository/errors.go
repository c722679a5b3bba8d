package repository

import "errors"

// Common repository errors
var (
	ErrBoardNotFound  = errors.New("board not found")
	ErrColumnNotFound = errors.New("column not found")
	ErrTaskNotFound   = errors.New("task not found")
	ErrUserNotFound   = errors.New("user not found")

	// ErrUserExists is returned when the username or email is already taken
	ErrUserExists = errors.New("user already exists")

	// ErrColumnNotOnBoard is returned by a reorder that names a column of another board
	ErrColumnNotOnBoard = errors.New("column does not belong to board")
)
