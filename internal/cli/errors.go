package cli

import (
	"errors"
	"fmt"
	"io"

	"relstamp/internal/core/tracker"

	"github.com/fatih/color"
)

// Exit codes returned by relstampctl.
const (
	ExitSuccess          = 0
	ExitGeneral          = 1
	ExitUsage            = 2
	ExitParse            = 3
	ExitNoActiveDocument = 4
	ExitPersistence      = 5
)

// Error codes for programmatic error handling.
const (
	CodeParseError       = "PARSE_ERROR"
	CodeNoActiveDocument = "NO_ACTIVE_DOCUMENT"
	CodePersistence      = "PERSISTENCE_FAILED"
	CodeUsage            = "USAGE"
	CodeInternalError    = "INTERNAL_ERROR"
)

// CLIError is a user-facing error with an exit code and remediation hint.
type CLIError struct {
	Code     string
	Message  string
	Hint     string
	ExitCode int
	Err      error
}

func (e *CLIError) Error() string {
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// usageError reports bad arguments or flags.
func usageError(format string, args ...any) *CLIError {
	return &CLIError{
		Code:     CodeUsage,
		Message:  fmt.Sprintf(format, args...),
		Hint:     "Run 'relstampctl --help' for usage",
		ExitCode: ExitUsage,
	}
}

// FromError classifies err into a CLIError.
func FromError(err error) *CLIError {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	switch {
	case errors.Is(err, tracker.ErrNoActiveDocument):
		return &CLIError{
			Code:     CodeNoActiveDocument,
			Message:  "no active document",
			Hint:     "Run 'relstampctl open FILE' or pass --file",
			ExitCode: ExitNoActiveDocument,
			Err:      err,
		}
	case errors.Is(err, tracker.ErrParse):
		return &CLIError{
			Code:     CodeParseError,
			Message:  err.Error(),
			Hint:     "Timestamps look like \"03:00 PM\" or 20240101150000",
			ExitCode: ExitParse,
			Err:      err,
		}
	case errors.Is(err, tracker.ErrPersist):
		return &CLIError{
			Code:     CodePersistence,
			Message:  err.Error(),
			Hint:     "Check that the config directory and the document are writable",
			ExitCode: ExitPersistence,
			Err:      err,
		}
	default:
		return &CLIError{
			Code:     CodeInternalError,
			Message:  err.Error(),
			ExitCode: ExitGeneral,
			Err:      err,
		}
	}
}

func printError(w io.Writer, err *CLIError) {
	_, _ = color.New(color.FgRed, color.Bold).Fprintf(w, "Error: %s\n", err.Message)
	if err.Hint != "" {
		_, _ = color.New(color.FgYellow).Fprintf(w, "Hint: %s\n", err.Hint)
	}
}
