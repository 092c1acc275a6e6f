package cli

import (
	"errors"

	"github.com/coregx/ustring"
)

// Exit codes for ustr.
const (
	// ExitSuccess indicates a successful command.
	ExitSuccess = 0

	// ExitNoMatch indicates a search that found nothing.
	ExitNoMatch = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates malformed text or an invalid pattern.
	ExitDataError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates a failure reading input.
	ExitIOError = 74

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 78
)

var (
	// ErrNoMatch signals that a search command found nothing. It carries
	// no message worth logging.
	ErrNoMatch = errors.New("no match")

	// ErrConfig wraps configuration failures.
	ErrConfig = errors.New("configuration error")

	// ErrUsage wraps invalid arguments.
	ErrUsage = errors.New("invalid usage")

	// ErrInput wraps failures reading the input text.
	ErrInput = errors.New("cannot read input")
)

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	var compileErr *ustring.CompileError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNoMatch):
		return ExitNoMatch
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrInput):
		return ExitIOError
	case ustring.IsEncodingError(err), errors.As(err, &compileErr),
		errors.Is(err, ustring.ErrInvalidCapture):
		return ExitDataError
	}
	return ExitInternalError
}
