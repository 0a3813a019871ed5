package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/tsxflat/internal/configloader"
	"github.com/yaklabco/tsxflat/pkg/runner"
)

// Exit codes for tsxflat.
const (
	// ExitSuccess indicates every file was processed.
	ExitSuccess = 0

	// ExitFilesFailed indicates at least one file could not be read,
	// parsed or linearized.
	ExitFilesFailed = 1

	// ExitMismatch indicates src --check found a file that does not
	// regenerate exactly.
	ExitMismatch = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors that only select an exit code; main does not log them.
var (
	// ErrFilesFailed is returned when one or more files failed.
	ErrFilesFailed = errors.New("one or more files could not be processed")

	// ErrRoundTripMismatch is returned by src --check when regeneration differs.
	ErrRoundTripMismatch = errors.New("regenerated source differs from input")

	// ErrConfigLoad wraps configuration loading failures.
	ErrConfigLoad = errors.New("failed to load configuration")
)

// ExitCodeFromResult determines the exit code for a completed run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil || !result.HasFailures() {
		return ExitSuccess
	}
	return ExitFilesFailed
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	var validation *configloader.ValidationError
	var pathErr *fs.PathError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFilesFailed):
		return ExitFilesFailed
	case errors.Is(err, ErrRoundTripMismatch):
		return ExitMismatch
	case errors.As(err, &validation), errors.Is(err, ErrConfigLoad):
		return ExitConfigError
	case errors.As(err, &pathErr):
		return ExitIOError
	case errors.Is(err, errUsage):
		return ExitInvalidUsage
	default:
		return ExitInternalError
	}
}

// IsReported reports whether err only signals an exit code because its
// details were already written by a reporter.
func IsReported(err error) bool {
	return errors.Is(err, ErrFilesFailed) || errors.Is(err, ErrRoundTripMismatch)
}
