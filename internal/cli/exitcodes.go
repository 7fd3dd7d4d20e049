package cli

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/snipboard/internal/app"
	"github.com/thenoetrevino/snipboard/internal/board"
	"github.com/thenoetrevino/snipboard/internal/models"
	"github.com/thenoetrevino/snipboard/internal/persistence"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, network errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing arguments, deleting outside edit mode,
	// or when the user needs to provide different arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Snippet not found, column not found.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: Empty clipboard, unreadable input.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Blank titles, unknown colors or modes, duplicate column names.
	ExitValidation = 5

	// ExitAuth indicates the remote backend refused the credentials or session.
	ExitAuth = 6
)

// CommandError carries the process exit code of a failed command.
// The message has already been shown to the user when it is returned.
type CommandError struct {
	Code int
	Err  error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("exit %d: %v", e.Code, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by Execute onto a process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *CommandError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCodeFor(err)
}

// ExitCodeFor classifies a domain error
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, board.ErrSnippetNotFound),
		errors.Is(err, persistence.ErrNotFound),
		errors.Is(err, models.ErrUnknownColumn),
		errors.Is(err, models.ErrColumnIndex):
		return ExitNotFound
	case errors.Is(err, board.ErrValidation),
		errors.Is(err, models.ErrEmptyColumnTitle),
		errors.Is(err, models.ErrDuplicateColumn),
		errors.Is(err, models.ErrUnknownMode),
		errors.Is(err, persistence.ErrRejected):
		return ExitValidation
	case errors.Is(err, persistence.ErrAuth):
		return ExitAuth
	case errors.Is(err, board.ErrEditModeRequired),
		errors.Is(err, board.ErrNotRemote),
		errors.Is(err, app.ErrNoEndpoint):
		return ExitUsage
	default:
		return ExitError
	}
}
