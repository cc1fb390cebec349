package cli

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/yaklabco/gostarstyle/internal/configloader"
	"github.com/yaklabco/gostarstyle/pkg/config"
	"github.com/yaklabco/gostarstyle/pkg/fsutil"
	"github.com/yaklabco/gostarstyle/pkg/pipeline"
	"github.com/yaklabco/gostarstyle/pkg/style"
)

// Exit codes for gostarstyle.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitUnformatted indicates files differ from their formatted form.
	ExitUnformatted = 1

	// ExitUsageError indicates invalid command-line usage or configuration.
	ExitUsageError = 2

	// ExitIOError indicates files could not be read or written.
	ExitIOError = 3

	// ExitInternalError indicates an unexpected failure.
	ExitInternalError = 4
)

var (
	// ErrUnformattedFiles is returned when a check finds files that need
	// formatting. It only signals the exit code.
	ErrUnformattedFiles = errors.New("files need formatting")

	// ErrFormatFailed is returned when some files could not be processed.
	ErrFormatFailed = errors.New("some files could not be formatted")

	// ErrConfig wraps configuration loading failures.
	ErrConfig = errors.New("configuration error")
)

// usageError marks errors caused by how the command was invoked.
type usageError struct {
	err error
}

func newUsageError(err error) error {
	return &usageError{err: err}
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	return categorizeError(err)
}

func categorizeError(err error) int {
	var usage *usageError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUnformattedFiles):
		return ExitUnformatted
	case errors.As(err, &usage),
		errors.Is(err, ErrConfig),
		errors.Is(err, configloader.ErrInvalidConfig),
		errors.Is(err, config.ErrUnknownKeys),
		errors.Is(err, style.ErrUnknownMode),
		isCobraUsageError(err):
		return ExitUsageError
	case errors.Is(err, ErrFormatFailed),
		errors.Is(err, pipeline.ErrWriteFailure),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// isCobraUsageError recognizes argument errors cobra creates without a
// typed error.
func isCobraUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{"unknown command", "accepts ", "requires at least", "requires at most"} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
