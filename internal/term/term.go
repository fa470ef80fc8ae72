// Package term provides user-facing terminal output for the scriptgate CLI.
// This is distinct from operational logging (see internal/clog).
//
// Warn and Error messages often echo caller-supplied script paths verbatim.
// When the destination is an interactive terminal those messages are passed
// through Escape so embedded control sequences are shown, not interpreted.
package term

import (
	"fmt"
	"io"
	"os"
	"sync"

	xterm "golang.org/x/term"
)

var (
	mu     sync.Mutex
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	silent bool
)

// isTerminal reports whether w is an interactive terminal. Replaced in tests.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && xterm.IsTerminal(int(f.Fd()))
}

// SetSilent enables or disables silent mode. When silent, Print, Printf and
// Println are suppressed; Warn and Error are not.
func SetSilent(s bool) {
	mu.Lock()
	defer mu.Unlock()
	silent = s
}

// SetOutput sets the stdout writer. Pass nil to use os.Stdout.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	stdout = w
}

// SetErrOutput sets the stderr writer. Pass nil to use os.Stderr.
func SetErrOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	stderr = w
}

// Print writes a to stdout unless silent.
func Print(a ...any) {
	mu.Lock()
	defer mu.Unlock()
	if silent {
		return
	}
	_, _ = fmt.Fprint(stdout, a...)
}

// Printf formats and writes to stdout unless silent.
func Printf(format string, a ...any) {
	mu.Lock()
	defer mu.Unlock()
	if silent {
		return
	}
	_, _ = fmt.Fprintf(stdout, format, a...)
}

// Println writes a and a newline to stdout unless silent.
func Println(a ...any) {
	mu.Lock()
	defer mu.Unlock()
	if silent {
		return
	}
	_, _ = fmt.Fprintln(stdout, a...)
}

// Warn writes "Warning: <msg>" to stderr.
func Warn(format string, a ...any) {
	mu.Lock()
	defer mu.Unlock()
	_, _ = fmt.Fprintf(stderr, "Warning: %s\n", safe(stderr, fmt.Sprintf(format, a...)))
}

// Error writes "Error: <msg>" to stderr.
func Error(format string, a ...any) {
	mu.Lock()
	defer mu.Unlock()
	_, _ = fmt.Fprintf(stderr, "Error: %s\n", safe(stderr, fmt.Sprintf(format, a...)))
}

// Stderr writes msg to stderr as is, followed by a newline, escaping it only
// when stderr is a terminal. Used for failure text that already carries its
// own prefix.
func Stderr(msg string) {
	mu.Lock()
	defer mu.Unlock()
	_, _ = fmt.Fprintln(stderr, safe(stderr, msg))
}

// Safe returns s escaped with Escape if w is a terminal, and s otherwise.
func Safe(w io.Writer, s string) string {
	return safe(w, s)
}

func safe(w io.Writer, s string) string {
	if isTerminal(w) {
		return Escape(s)
	}
	return s
}

// Reset restores the default writers and disables silent mode.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	stdout = os.Stdout
	stderr = os.Stderr
	silent = false
}
