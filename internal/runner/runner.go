// Package runner executes the script interpreter and classifies how the
// process ended.
package runner

import (
	"context"
	"time"
)

// Runner runs the interpreter against an already validated script path.
// Implementations do no validation of their own.
type Runner interface {
	Run(ctx context.Context, path string) Outcome
}

// Kind classifies an Outcome.
type Kind int

const (
	// Success means the process exited with status 0.
	Success Kind = iota
	// RejectedPath means the path failed validation and nothing was run.
	RejectedPath
	// LaunchFailure means the operating system could not start the process.
	LaunchFailure
	// ProcessFailure means the process ran and exited with a non-zero status.
	ProcessFailure
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case RejectedPath:
		return "rejected_path"
	case LaunchFailure:
		return "launch_failure"
	case ProcessFailure:
		return "process_failure"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String. Unknown names map to
// ProcessFailure so a failed response is never mistaken for success.
func ParseKind(s string) Kind {
	switch s {
	case "success":
		return Success
	case "rejected_path":
		return RejectedPath
	case "launch_failure":
		return LaunchFailure
	default:
		return ProcessFailure
	}
}

// ErrorPrefix is prepended to captured stderr when the process fails.
const ErrorPrefix = "Error: "

// Outcome is the result of one invocation.
type Outcome struct {
	Kind Kind

	// Output is the decoded stdout. Only set for Success.
	Output string

	// Message is the failure text. Empty for Success.
	Message string

	// ExitCode is the process exit code, or -1 if no process exited.
	ExitCode int

	// Duration is the wall time spent in the runner.
	Duration time.Duration
}

// Rejected builds the outcome for a path that failed validation.
func Rejected(err error) Outcome {
	return Outcome{Kind: RejectedPath, Message: err.Error(), ExitCode: -1}
}

// OK reports whether the outcome is a Success.
func (o Outcome) OK() bool {
	return o.Kind == Success
}

// Err returns nil for Success and an *OutcomeError otherwise.
func (o Outcome) Err() error {
	if o.Kind == Success {
		return nil
	}
	return &OutcomeError{Kind: o.Kind, Message: o.Message, ExitCode: o.ExitCode}
}

// Result returns the outcome in string-or-error form: the stdout text on
// success, or an error whose message is the failure text.
func (o Outcome) Result() (string, error) {
	if err := o.Err(); err != nil {
		return "", err
	}
	return o.Output, nil
}

// OutcomeError is the error form of a failed Outcome.
type OutcomeError struct {
	Kind     Kind
	Message  string
	ExitCode int
}

func (e *OutcomeError) Error() string {
	return e.Message
}
