package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/xdg/scriptgate/internal/clog"
)

// DefaultInterpreter is the command name used when none is configured.
const DefaultInterpreter = "python"

// ProcessRunner runs the interpreter as a child process with the script path
// as its only argument.
type ProcessRunner struct {
	interpreter string
}

// NewProcessRunner creates a ProcessRunner for the given interpreter command
// name. The name is resolved on PATH at each run. An empty name selects
// DefaultInterpreter.
func NewProcessRunner(interpreter string) *ProcessRunner {
	if interpreter == "" {
		interpreter = DefaultInterpreter
	}
	return &ProcessRunner{interpreter: interpreter}
}

// Interpreter returns the configured interpreter command name.
func (r *ProcessRunner) Interpreter() string {
	return r.interpreter
}

// Run starts the interpreter, waits for it to exit and classifies the result.
// The context is only checked before launch; a started process is always
// waited for.
func (r *ProcessRunner) Run(ctx context.Context, path string) Outcome {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return Outcome{Kind: LaunchFailure, Message: err.Error(), ExitCode: -1}
	}

	cmd := exec.Command(r.interpreter, path)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	clog.Debug("runner: starting %s %q", r.interpreter, path)
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		// Command ran but returned non-zero
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			clog.Debug("runner: %s exited with code %d after %s", r.interpreter, exitErr.ExitCode(), elapsed)
			return Outcome{
				Kind:     ProcessFailure,
				Message:  ErrorPrefix + Decode(stderr.Bytes()),
				ExitCode: exitErr.ExitCode(),
				Duration: elapsed,
			}
		}

		// Interpreter missing, permission denied, etc.
		clog.Info("runner: failed to start %s: %v", r.interpreter, err)
		return Outcome{
			Kind:     LaunchFailure,
			Message:  err.Error(),
			ExitCode: -1,
			Duration: elapsed,
		}
	}

	clog.Debug("runner: %s completed after %s", r.interpreter, elapsed)
	return Outcome{
		Kind:     Success,
		Output:   Decode(stdout.Bytes()),
		ExitCode: 0,
		Duration: elapsed,
	}
}
