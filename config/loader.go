package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources: built-in
// defaults, then an optional YAML file, then environment variable
// overrides, then validation.
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	if path := discoverConfigFile(configPath); path != "" {
		if err := loadYAMLFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// explicit path, DEBUGMCP_CONFIG environment variable, ./debugmcp.yaml.
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}
	if envPath := os.Getenv("DEBUGMCP_CONFIG"); envPath != "" {
		return envPath
	}
	if _, err := os.Stat("debugmcp.yaml"); err == nil {
		return "debugmcp.yaml"
	}
	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DEBUGMCP_NODE_BIN"); v != "" {
		cfg.Runtimes.NodeBin = v
	}
	if v := os.Getenv("DEBUGMCP_PYTHON_BIN"); v != "" {
		cfg.Runtimes.PythonBin = v
	}
	if v := os.Getenv("DEBUGMCP_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.Execution.DefaultTimeoutMs = ms
		}
	}
	if v := os.Getenv("DEBUGMCP_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
