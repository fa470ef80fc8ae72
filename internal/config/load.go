package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/xdg/scriptgate/internal/clog"
)

// Load reads the configuration from Path(). If the file does not exist, a
// commented default file is written and DefaultConfig() is returned. Paths
// containing ~ are expanded.
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile reads the configuration from path. A missing file yields the
// defaults and, when path is the standard location, creates it.
func LoadFile(path string) (*Config, error) {
	clog.Debug("config: loading %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		clog.Debug("config: %s not found, using defaults", path)
		if path == Path() {
			if writeErr := WriteDefaultConfig(); writeErr != nil {
				clog.Warn("config: failed to create default config: %v", writeErr)
			}
		}
		cfg := DefaultConfig()
		expandPaths(cfg)
		return cfg, nil
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	expandPaths(cfg)
	return cfg, nil
}
