package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/xdg/scriptgate/internal/clog"
)

// EventType identifies a streamed process event.
type EventType int

const (
	// EventStart is delivered once after the process has started.
	EventStart EventType = iota
	// EventStdout carries one line of standard output.
	EventStdout
	// EventStderr carries one line of standard error.
	EventStderr
	// EventClose is delivered last, after both streams are drained.
	EventClose
)

// String returns the name of the event type.
func (t EventType) String() string {
	switch t {
	case EventStart:
		return "start"
	case EventStdout:
		return "stdout"
	case EventStderr:
		return "stderr"
	case EventClose:
		return "close"
	default:
		return "unknown"
	}
}

// Event is one notification from a streamed run.
type Event struct {
	Type EventType

	// Line is the decoded line without its terminator (stdout/stderr events).
	Line string

	// PID is the child process id (start event).
	PID int

	// ExitCode is the exit status, -1 if terminated by a signal (close event).
	ExitCode int

	// Duration is the wall time from launch to exit (close event).
	Duration time.Duration
}

// Handler receives stream events. Calls are serialized.
type Handler func(Event)

// Stream runs the interpreter like Run but delivers output line by line as
// it is produced. It returns an error only if the process could not be
// started or waited for; a non-zero exit is reported through the close
// event. Once the start event has been delivered a close event always
// follows, with exit code -1 if waiting failed.
func (r *ProcessRunner) Stream(ctx context.Context, path string, handle Handler) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	cmd := exec.Command(r.interpreter, path)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		clog.Info("runner: failed to start %s: %v", r.interpreter, err)
		return err
	}

	var mu sync.Mutex
	emit := func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		handle(ev)
	}

	clog.Debug("runner: streaming %s %q (pid %d)", r.interpreter, path, cmd.Process.Pid)
	emit(Event{Type: EventStart, PID: cmd.Process.Pid})

	// Both pipes must be drained before Wait.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		readLines(stdout, EventStdout, emit)
	}()
	go func() {
		defer wg.Done()
		readLines(stderr, EventStderr, emit)
	}()
	wg.Wait()

	exitCode, err := exitStatus(cmd.Wait())
	emit(Event{Type: EventClose, ExitCode: exitCode, Duration: time.Since(start)})
	if err != nil {
		return fmt.Errorf("wait for %s: %w", r.interpreter, err)
	}
	return nil
}

// exitStatus converts the result of cmd.Wait into an exit code. A non-zero
// exit is not an error; any other wait failure yields -1 and the error.
func exitStatus(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

// readLines emits one event per line read from r until EOF. A final line
// without a terminator is still emitted.
func readLines(r io.Reader, typ EventType, emit func(Event)) {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			text := strings.TrimSuffix(Decode(line), "\n")
			text = strings.TrimSuffix(text, "\r")
			emit(Event{Type: typ, Line: text})
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				// Keep the pipe drained so the child never blocks on write.
				_, _ = io.Copy(io.Discard, br)
			}
			return
		}
	}
}
