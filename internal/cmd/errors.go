package cmd

import (
	"fmt"

	"github.com/xdg/scriptgate/internal/runner"
)

// Exit codes returned for failed invocations.
const (
	ExitProcessFailure = 1
	ExitRejectedPath   = 2
	ExitLaunchFailure  = 127
)

// ExitCodeError requests a specific process exit code from main. The error
// text has already been shown to the user.
type ExitCodeError struct {
	Code int
}

// NewExitCodeError creates an ExitCodeError with the given code.
func NewExitCodeError(code int) *ExitCodeError {
	return &ExitCodeError{Code: code}
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// exitCodeFor maps a failed outcome kind to the CLI exit code.
func exitCodeFor(kind runner.Kind) int {
	switch kind {
	case runner.RejectedPath:
		return ExitRejectedPath
	case runner.LaunchFailure:
		return ExitLaunchFailure
	default:
		return ExitProcessFailure
	}
}
