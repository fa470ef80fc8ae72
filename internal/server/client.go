package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"

	"github.com/xdg/scriptgate/internal/invoke"
	"github.com/xdg/scriptgate/internal/runner"
)

// Client sends invocations to a Server.
type Client struct {
	socketPath string
	dialer     net.Dialer
}

// NewClient creates a Client for the socket at socketPath.
func NewClient(socketPath string) *Client {
	return &Client{socketPath: socketPath}
}

// Invoke asks the server to run path and returns the reconstructed outcome.
// Transport failures are returned as errors; script failures are reported in
// the outcome.
func (c *Client) Invoke(ctx context.Context, path string) (runner.Outcome, error) {
	conn, err := c.dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return runner.Outcome{}, fmt.Errorf("connect to %s: %w", c.socketPath, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	data, err := json.Marshal(invoke.Request{Path: path})
	if err != nil {
		return runner.Outcome{}, fmt.Errorf("marshal request: %w", err)
	}
	if _, err := conn.Write(append(data, '\n')); err != nil {
		return runner.Outcome{}, fmt.Errorf("send request: %w", err)
	}

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return runner.Outcome{}, fmt.Errorf("read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(line, &resp); err != nil {
		return runner.Outcome{}, fmt.Errorf("decode response: %w", err)
	}
	if resp.Kind == kindBadRequest {
		return runner.Outcome{}, fmt.Errorf("server rejected request: %s", resp.Error)
	}

	if resp.OK {
		return runner.Outcome{Kind: runner.Success, Output: resp.Output, ExitCode: resp.ExitCode}, nil
	}
	return runner.Outcome{Kind: runner.ParseKind(resp.Kind), Message: resp.Error, ExitCode: resp.ExitCode}, nil
}
