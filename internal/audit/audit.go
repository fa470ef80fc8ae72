// Package audit records script invocations as key=value lines suitable for
// parsing and analysis.
package audit

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType represents the stage an invocation reached.
type EventType string

// Event types for script invocations.
const (
	EventRequest    EventType = "REQUEST"
	EventReject     EventType = "REJECT"
	EventLaunchFail EventType = "LAUNCH_FAIL"
	EventFail       EventType = "FAIL"
	EventComplete   EventType = "COMPLETE"
)

// Event is one audit log entry.
type Event struct {
	// Timestamp is when the event occurred.
	Timestamp time.Time

	// Type is the event type (REQUEST, REJECT, etc.)
	Type EventType

	// ID correlates all events of one invocation.
	ID string

	// Path is the script path as supplied by the caller.
	Path string

	// Reason is the launch error (LAUNCH_FAIL events).
	Reason string

	// ExitCode is the process exit code (FAIL and COMPLETE events).
	ExitCode int

	// Duration is the runner wall time (FAIL and COMPLETE events).
	Duration time.Duration
}

// NewID returns a fresh invocation id.
func NewID() string {
	return uuid.NewString()
}

// Format returns the log entry as a single line.
// Format: 2024-01-15T14:32:05Z SCRIPT COMPLETE id=... path="/app/__print_numbers.py" exit=0 duration=12.5 ms
func (e *Event) Format() string {
	var b strings.Builder

	b.WriteString(e.Timestamp.UTC().Format(time.RFC3339))
	b.WriteString(" SCRIPT ")
	b.WriteString(string(e.Type))
	b.WriteString(" id=")
	b.WriteString(e.ID)
	b.WriteString(" path=")
	b.WriteString(strconv.Quote(e.Path))

	switch e.Type {
	case EventLaunchFail:
		if e.Reason != "" {
			b.WriteString(" reason=")
			b.WriteString(strconv.Quote(e.Reason))
		}
	case EventFail, EventComplete:
		b.WriteString(" exit=")
		b.WriteString(strconv.Itoa(e.ExitCode))
		b.WriteString(" duration=")
		b.WriteString(strconv.Quote(FormatDuration(e.Duration, false)))
	}

	return b.String()
}

// Logger writes audit events to an io.Writer. A nil *Logger discards
// everything.
type Logger struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewLogger creates an audit logger writing to w.
func NewLogger(w io.Writer) *Logger {
	return &Logger{w: w, now: time.Now}
}

// Log writes an event. A zero Timestamp is filled in.
func (l *Logger) Log(e *Event) error {
	if l == nil || l.w == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if e.Timestamp.IsZero() {
		e.Timestamp = l.now()
	}
	if _, err := io.WriteString(l.w, e.Format()+"\n"); err != nil {
		return fmt.Errorf("write audit event: %w", err)
	}
	return nil
}

// LogRequest logs a REQUEST event.
func (l *Logger) LogRequest(id, path string) error {
	return l.Log(&Event{Type: EventRequest, ID: id, Path: path})
}

// LogReject logs a REJECT event.
func (l *Logger) LogReject(id, path string) error {
	return l.Log(&Event{Type: EventReject, ID: id, Path: path})
}

// LogLaunchFail logs a LAUNCH_FAIL event.
func (l *Logger) LogLaunchFail(id, path, reason string) error {
	return l.Log(&Event{Type: EventLaunchFail, ID: id, Path: path, Reason: reason})
}

// LogFail logs a FAIL event for a non-zero exit.
func (l *Logger) LogFail(id, path string, exitCode int, duration time.Duration) error {
	return l.Log(&Event{Type: EventFail, ID: id, Path: path, ExitCode: exitCode, Duration: duration})
}

// LogComplete logs a COMPLETE event.
func (l *Logger) LogComplete(id, path string, duration time.Duration) error {
	return l.Log(&Event{Type: EventComplete, ID: id, Path: path, Duration: duration})
}
