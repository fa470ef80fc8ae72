package cmd

import (
	"fmt"

	"github.com/xdg/scriptgate/internal/audit"
	"github.com/xdg/scriptgate/internal/clog"
	"github.com/xdg/scriptgate/internal/config"
	"github.com/xdg/scriptgate/internal/invoke"
	"github.com/xdg/scriptgate/internal/runner"
	"github.com/xdg/scriptgate/internal/term"
)

// loadConfig reads the config file named by --config, or the default one.
func loadConfig() (*config.Config, error) {
	if flagConfig != "" {
		return config.LoadFile(flagConfig)
	}
	return config.Load()
}

// setup loads the configuration and configures logging and terminal output.
// daemon disables stderr logging.
func setup(daemon bool) (*config.Config, error) {
	term.SetSilent(flagSilent)

	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := clog.ParseLevel(cfg.Log.Level)
	if flagDebug {
		level = clog.LevelDebug
	}
	if err := clog.Configure(cfg.Log.File, level, daemon); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	return cfg, nil
}

// newGate builds the invocation gate described by cfg. The returned cleanup
// closes the audit log.
func newGate(cfg *config.Config) (*invoke.Gate, func(), error) {
	r := runner.NewProcessRunner(cfg.Runner.Interpreter)

	if cfg.Audit.File == "" {
		return invoke.New(r), func() {}, nil
	}

	f, err := clog.OpenLogFile(cfg.Audit.File)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	gate := invoke.New(r, invoke.WithAuditLogger(audit.NewLogger(f)))
	return gate, func() { _ = f.Close() }, nil
}
