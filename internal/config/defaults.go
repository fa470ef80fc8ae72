package config

import "github.com/xdg/scriptgate/internal/runner"

// DefaultConfig returns a Config with all defaults populated.
func DefaultConfig() *Config {
	return &Config{
		Runner: RunnerConfig{
			Interpreter: runner.DefaultInterpreter,
		},
		Server: ServerConfig{
			Socket: "~/.local/share/scriptgate/scriptgate.sock",
		},
		Log: LogConfig{
			File:  "~/.local/state/scriptgate/scriptgate.log",
			Level: "info",
		},
		Audit: AuditConfig{
			File: "~/.local/share/scriptgate/audit.log",
		},
	}
}

// defaultConfigTemplate is written by WriteDefaultConfig. It must decode to
// DefaultConfig().
const defaultConfigTemplate = `# scriptgate configuration
#
# Only scripts whose path ends in __print_numbers.py are ever executed.

runner:
  # Interpreter command name, looked up on PATH. Absolute paths are rejected.
  interpreter: python

server:
  # Unix socket served by 'scriptgate serve'.
  socket: ~/.local/share/scriptgate/scriptgate.sock

log:
  file: ~/.local/state/scriptgate/scriptgate.log
  # One of: debug, info, warn, error
  level: info

audit:
  # One line per invocation stage. Set to "" to disable.
  file: ~/.local/share/scriptgate/audit.log
`
