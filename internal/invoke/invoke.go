// Package invoke is the single entry point hosts use to run the script: it
// validates the path, hands it to a runner.Runner and records the outcome.
package invoke

import (
	"context"
	"errors"

	"github.com/xdg/scriptgate/internal/audit"
	"github.com/xdg/scriptgate/internal/clog"
	"github.com/xdg/scriptgate/internal/runner"
	"github.com/xdg/scriptgate/internal/scriptpath"
)

// ErrStreamUnsupported is returned by Gate.Stream when the runner cannot
// stream output.
var ErrStreamUnsupported = errors.New("runner does not support streaming")

// Request is the input of one invocation.
type Request struct {
	Path string `json:"path"`
}

// Streamer is implemented by runners that can deliver output line by line.
type Streamer interface {
	Stream(ctx context.Context, path string, handle runner.Handler) error
}

// Gate validates script paths before they reach the runner.
type Gate struct {
	runner runner.Runner
	audit  *audit.Logger
}

// Option configures a Gate.
type Option func(*Gate)

// WithAuditLogger records every invocation to l.
func WithAuditLogger(l *audit.Logger) Option {
	return func(g *Gate) {
		g.audit = l
	}
}

// New creates a Gate in front of r.
func New(r runner.Runner, opts ...Option) *Gate {
	g := &Gate{runner: r}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Invoke validates path and, if it is accepted, runs it and waits for the
// process to exit. A rejected path never reaches the runner.
func (g *Gate) Invoke(ctx context.Context, path string) runner.Outcome {
	id := audit.NewID()
	g.logAudit(g.audit.LogRequest(id, path))

	if err := scriptpath.Validate(path); err != nil {
		clog.Info("invoke: rejected script path %q", path)
		g.logAudit(g.audit.LogReject(id, path))
		return runner.Rejected(err)
	}

	out := g.runner.Run(ctx, path)

	switch out.Kind {
	case runner.Success:
		g.logAudit(g.audit.LogComplete(id, path, out.Duration))
	case runner.LaunchFailure:
		g.logAudit(g.audit.LogLaunchFail(id, path, out.Message))
	default:
		g.logAudit(g.audit.LogFail(id, path, out.ExitCode, out.Duration))
	}
	return out
}

// InvokeRequest is Invoke for a Request value.
func (g *Gate) InvokeRequest(ctx context.Context, req Request) runner.Outcome {
	return g.Invoke(ctx, req.Path)
}

// InvokeAsync runs Invoke on its own goroutine so the caller's event loop
// is not blocked. The returned channel delivers exactly one outcome and is
// then closed.
func (g *Gate) InvokeAsync(ctx context.Context, path string) <-chan runner.Outcome {
	ch := make(chan runner.Outcome, 1)
	go func() {
		defer close(ch)
		ch <- g.Invoke(ctx, path)
	}()
	return ch
}

// Stream validates path and streams the run through handle. It returns the
// *scriptpath.RejectedPathError for rejected paths and the launch error if
// the process could not be started.
func (g *Gate) Stream(ctx context.Context, path string, handle runner.Handler) error {
	id := audit.NewID()
	g.logAudit(g.audit.LogRequest(id, path))

	if err := scriptpath.Validate(path); err != nil {
		clog.Info("invoke: rejected script path %q", path)
		g.logAudit(g.audit.LogReject(id, path))
		return err
	}

	s, ok := g.runner.(Streamer)
	if !ok {
		return ErrStreamUnsupported
	}

	closed := false
	err := s.Stream(ctx, path, func(ev runner.Event) {
		if ev.Type == runner.EventClose {
			closed = true
			if ev.ExitCode == 0 {
				g.logAudit(g.audit.LogComplete(id, path, ev.Duration))
			} else {
				g.logAudit(g.audit.LogFail(id, path, ev.ExitCode, ev.Duration))
			}
		}
		handle(ev)
	})
	if err != nil && !closed {
		g.logAudit(g.audit.LogLaunchFail(id, path, err.Error()))
	}
	return err
}

func (g *Gate) logAudit(err error) {
	if err != nil {
		clog.Warn("invoke: %v", err)
	}
}
