package config

import (
	"fmt"
	"strings"
	"unicode"
)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks a parsed Config. It returns an error naming the first
// invalid field:
//   - runner.interpreter must be a bare command name (no separators, no
//     whitespace) so it is always resolved on PATH
//   - server.socket must be set
//   - log.level must be one of debug, info, warn, error (if non-empty)
func Validate(cfg *Config) error {
	if err := validateInterpreter(cfg.Runner.Interpreter); err != nil {
		return err
	}

	if strings.TrimSpace(cfg.Server.Socket) == "" {
		return fmt.Errorf("server.socket: must not be empty")
	}

	if cfg.Log.Level != "" && !validLogLevels[cfg.Log.Level] {
		return fmt.Errorf("log.level: invalid value %q, must be one of: debug, info, warn, error", cfg.Log.Level)
	}

	return nil
}

func validateInterpreter(name string) error {
	if name == "" {
		return fmt.Errorf("runner.interpreter: must not be empty")
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("runner.interpreter: %q must be a command name, not a path", name)
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("runner.interpreter: %q must not contain whitespace", name)
	}
	return nil
}
