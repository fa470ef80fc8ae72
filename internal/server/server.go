// Package server exposes the invocation gate to host applications over a
// Unix socket. Each connection carries one newline-delimited JSON request
// and receives one JSON response.
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/xdg/scriptgate/internal/clog"
	"github.com/xdg/scriptgate/internal/invoke"
	"github.com/xdg/scriptgate/internal/runner"
)

// ErrServerClosed is returned by Start on a server that was stopped.
var ErrServerClosed = errors.New("server closed")

// kindBadRequest marks responses to requests that never reached the gate.
const kindBadRequest = "bad_request"

// Response is the JSON reply to one invocation.
type Response struct {
	OK       bool   `json:"ok"`
	Output   string `json:"output,omitempty"`
	Kind     string `json:"kind,omitempty"`
	Error    string `json:"error,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// Invoker runs one validated invocation. *invoke.Gate implements it.
type Invoker interface {
	Invoke(ctx context.Context, path string) runner.Outcome
}

// Server listens on a Unix socket and forwards requests to an Invoker.
type Server struct {
	socketPath string
	invoker    Invoker

	listener net.Listener
	wg       sync.WaitGroup
	shutdown chan struct{}
	closed   bool
	mu       sync.Mutex // protects listener and closed
}

// New creates a Server that will listen on socketPath.
func New(socketPath string, invoker Invoker) *Server {
	return &Server{
		socketPath: socketPath,
		invoker:    invoker,
		shutdown:   make(chan struct{}),
	}
}

// Start creates the socket (parent directory 0700, socket 0600) and begins
// accepting connections in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrServerClosed
	}
	if s.listener != nil {
		return fmt.Errorf("server already started on %s", s.socketPath)
	}

	if err := os.MkdirAll(filepath.Dir(s.socketPath), 0o700); err != nil {
		return fmt.Errorf("create socket directory: %w", err)
	}

	// A stale socket from a previous run blocks Listen.
	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale socket: %w", err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.socketPath, err)
	}

	if err := os.Chmod(s.socketPath, 0o600); err != nil {
		listener.Close()
		return fmt.Errorf("chmod socket: %w", err)
	}

	s.listener = listener
	clog.Info("server: listening on %s", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// Stop stops accepting connections, waits for in-flight invocations to
// finish and removes the socket file.
func (s *Server) Stop() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.shutdown)

	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
	_ = os.Remove(s.socketPath)

	clog.Info("server: stopped")
	return err
}

// SocketPath returns the path of the Unix socket.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Accept retry delays, doubled after each consecutive failure.
const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

func (s *Server) acceptLoop() {
	defer s.wg.Done()

	var delay time.Duration
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.shutdown:
				return
			default:
			}

			if delay == 0 {
				delay = minAcceptDelay
			} else {
				delay = min(2*delay, maxAcceptDelay)
			}
			clog.Warn("server: accept: %v; retrying in %v", err, delay)

			select {
			case <-s.shutdown:
				return
			case <-time.After(delay):
			}
			continue
		}
		delay = 0

		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

// handleConnection reads one request line, invokes the gate and writes one
// response line.
func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		writeResponse(conn, Response{Kind: kindBadRequest, Error: "failed to read request: " + err.Error(), ExitCode: -1})
		return
	}

	var req invoke.Request
	if err := json.Unmarshal(line, &req); err != nil {
		writeResponse(conn, Response{Kind: kindBadRequest, Error: "invalid JSON: " + err.Error(), ExitCode: -1})
		return
	}

	out := s.invoker.Invoke(context.Background(), req.Path)
	writeResponse(conn, responseFor(out))
}

func responseFor(out runner.Outcome) Response {
	if out.OK() {
		return Response{OK: true, Output: out.Output, ExitCode: out.ExitCode}
	}
	return Response{Kind: out.Kind.String(), Error: out.Message, ExitCode: out.ExitCode}
}

func writeResponse(conn net.Conn, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		_, _ = conn.Write([]byte(`{"ok":false,"error":"failed to marshal response"}` + "\n"))
		return
	}
	data = append(data, '\n')
	_, _ = conn.Write(data) // connection may already be closed
}
