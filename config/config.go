// Package config provides unified configuration for the debugmcp server.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (explicit path, DEBUGMCP_CONFIG env, ./debugmcp.yaml)
//  3. Environment variable overrides (DEBUGMCP_ prefix)
//  4. Validation
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ErrConfiguration indicates an invalid or incomplete configuration.
var ErrConfiguration = errors.New("configuration error")

// Config holds all settings for the debugmcp server.
type Config struct {
	Runtimes  RuntimesConfig  `yaml:"runtimes"`
	Execution ExecutionConfig `yaml:"execution"`
	Log       LogConfig       `yaml:"log"`
}

// RuntimesConfig points at the interpreter binaries.
type RuntimesConfig struct {
	NodeBin   string `yaml:"node_bin"`   // default: "node"
	PythonBin string `yaml:"python_bin"` // default: "python3"
}

// ExecutionConfig bounds child processes and report size.
type ExecutionConfig struct {
	DefaultTimeoutMs int `yaml:"default_timeout_ms"` // default: 15000
	MaxOutputBytes   int `yaml:"max_output_bytes"`   // default: 8192
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error; default: "info"
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Runtimes: RuntimesConfig{
			NodeBin:   "node",
			PythonBin: "python3",
		},
		Execution: ExecutionConfig{
			DefaultTimeoutMs: 15000,
			MaxOutputBytes:   8192,
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultTimeout returns the execution timeout as a duration.
func (c *Config) DefaultTimeout() time.Duration {
	return time.Duration(c.Execution.DefaultTimeoutMs) * time.Millisecond
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: unknown log level %q", ErrConfiguration, c.Log.Level)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Runtimes.NodeBin == "" {
		return fmt.Errorf("%w: runtimes.node_bin must not be empty", ErrConfiguration)
	}
	if c.Runtimes.PythonBin == "" {
		return fmt.Errorf("%w: runtimes.python_bin must not be empty", ErrConfiguration)
	}
	if c.Execution.DefaultTimeoutMs <= 0 {
		return fmt.Errorf("%w: execution.default_timeout_ms must be positive", ErrConfiguration)
	}
	if c.Execution.MaxOutputBytes <= 0 {
		return fmt.Errorf("%w: execution.max_output_bytes must be positive", ErrConfiguration)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}
