package board

import (
	"errors"
	"fmt"
	"strings"
)

// Controller errors
var (
	// ErrValidation indicates a draft or patch that cannot be stored
	ErrValidation = errors.New("validation failed")

	// ErrEditModeRequired indicates a destructive operation attempted outside edit mode
	ErrEditModeRequired = errors.New("edit mode is required to delete snippets")

	// ErrSnippetNotFound indicates an ID that is not on the board
	ErrSnippetNotFound = errors.New("snippet not on the board")

	// ErrNotReady indicates an operation that needs a loaded board
	ErrNotReady = errors.New("board is not loaded")

	// ErrNotRemote indicates a login attempt while the board is in local mode
	ErrNotRemote = errors.New("login is only available in remote mode")

	// ErrClosed indicates use of a closed controller
	ErrClosed = errors.New("board controller is closed")
)

// FieldError is a single rejected field
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every rejected field of a draft or patch
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s %s", f.Field, f.Message)
	}
	return fmt.Sprintf("%v: %s", ErrValidation, strings.Join(parts, "; "))
}

// Unwrap makes errors.Is(err, ErrValidation) hold
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
