package models

import "errors"

// Domain-specific errors for board operations
var (
	// ErrUnknownColumn indicates a column title that is not on the board
	ErrUnknownColumn = errors.New("column does not exist")

	// ErrDuplicateColumn indicates a rename to a title already used by another column
	ErrDuplicateColumn = errors.New("a column with this title already exists")

	// ErrEmptyColumnTitle indicates a blank column title
	ErrEmptyColumnTitle = errors.New("column title cannot be empty")

	// ErrColumnIndex indicates a column index outside the board
	ErrColumnIndex = errors.New("column index out of range")

	// ErrUnknownMode indicates an unsupported persistence mode
	ErrUnknownMode = errors.New("unknown persistence mode")
)
