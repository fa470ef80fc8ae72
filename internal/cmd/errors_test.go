package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/xdg/scriptgate/internal/runner"
)

func TestExitCodeError(t *testing.T) {
	t.Run("Error returns formatted message", func(t *testing.T) {
		err := NewExitCodeError(42)
		if err.Error() != "exit code 42" {
			t.Errorf("Error() = %q, want %q", err.Error(), "exit code 42")
		}
	})

	t.Run("errors.As matches wrapped ExitCodeError", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", NewExitCodeError(127))
		var exitErr *ExitCodeError
		if !errors.As(err, &exitErr) {
			t.Fatal("errors.As failed to match ExitCodeError")
		}
		if exitErr.Code != 127 {
			t.Errorf("Code = %d, want 127", exitErr.Code)
		}
	})
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		kind runner.Kind
		want int
	}{
		{runner.RejectedPath, ExitRejectedPath},
		{runner.LaunchFailure, ExitLaunchFailure},
		{runner.ProcessFailure, ExitProcessFailure},
	}
	for _, tt := range tests {
		if got := exitCodeFor(tt.kind); got != tt.want {
			t.Errorf("exitCodeFor(%v) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}
