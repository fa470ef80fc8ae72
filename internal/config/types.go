// Package config provides the scriptgate configuration file and its
// defaults. The file is YAML, stored at ~/.config/scriptgate/config.yaml.
package config

// Config is the top-level scriptgate configuration.
type Config struct {
	Runner RunnerConfig `yaml:"runner,omitempty"`
	Server ServerConfig `yaml:"server,omitempty"`
	Log    LogConfig    `yaml:"log,omitempty"`
	Audit  AuditConfig  `yaml:"audit,omitempty"`
}

// RunnerConfig controls how the script is executed.
type RunnerConfig struct {
	// Interpreter is a command name resolved on PATH. Paths are not allowed.
	Interpreter string `yaml:"interpreter,omitempty"`
}

// ServerConfig contains settings for the Unix socket invocation server.
type ServerConfig struct {
	Socket string `yaml:"socket,omitempty"`
}

// LogConfig contains operational logging settings.
type LogConfig struct {
	File  string `yaml:"file,omitempty"`
	Level string `yaml:"level,omitempty"`
}

// AuditConfig contains audit log settings. An empty File disables auditing.
type AuditConfig struct {
	File string `yaml:"file,omitempty"`
}
