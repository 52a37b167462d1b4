package runner

import (
	"log/slog"
	"time"
)

// Default configuration values.
const (
	DefaultTimeout        = 15 * time.Second
	DefaultMaxOutputBytes = 8192
)

// Config holds the configuration for a Runner. The zero value is usable:
// every field has a default.
type Config struct {
	// NodeBin is the node interpreter binary. Default: "node".
	NodeBin string

	// PythonBin is the python interpreter binary. Default: "python3".
	PythonBin string

	// DefaultTimeout bounds executions whose request carries no timeout.
	DefaultTimeout time.Duration

	// MaxOutputBytes caps each rendered stdout/stderr body. Bodies over
	// the budget keep their head and gain an explicit truncation marker.
	MaxOutputBytes int

	// Logger is optional; nil discards logs.
	Logger *slog.Logger
}

func (c *Config) applyDefaults() {
	if c.NodeBin == "" {
		c.NodeBin = "node"
	}
	if c.PythonBin == "" {
		c.PythonBin = "python3"
	}
	if c.DefaultTimeout <= 0 {
		c.DefaultTimeout = DefaultTimeout
	}
	if c.MaxOutputBytes <= 0 {
		c.MaxOutputBytes = DefaultMaxOutputBytes
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
}
