package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir returns the scriptgate configuration directory:
// $XDG_CONFIG_HOME/scriptgate/, or ~/.config/scriptgate/ if unset.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = "~/.config"
	}
	return filepath.Join(ExpandHome(base), "scriptgate")
}

// EnsureDir creates the configuration directory with 0700 permissions.
func EnsureDir() error {
	if err := os.MkdirAll(Dir(), 0o700); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	return nil
}

// Path returns the configuration file path.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// ExpandHome replaces a leading ~ in path with the user's home directory.
// If the home directory cannot be determined, path is returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// expandPaths expands ~ in every path field of cfg.
func expandPaths(cfg *Config) {
	cfg.Server.Socket = ExpandHome(cfg.Server.Socket)
	cfg.Log.File = ExpandHome(cfg.Log.File)
	cfg.Audit.File = ExpandHome(cfg.Audit.File)
}
