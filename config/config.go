// Package config loads the JSON-file-backed server configuration that
// Serve's WithConfig option accepts. Library callers of Serve are free to build
// a Config literal directly and skip this package entirely; it exists
// for the convenience of a standalone binary reading one file at
// startup, not because Serve itself requires a file on disk.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

const DefaultPath = "./blazingagi.config.json"

// Default returns the configuration used when no file exists yet and
// no override was supplied.
func Default() Config {
	return Config{
		LogLevel:        "info",
		MaxConnections:  256,
		ReadTimeout:     0,
		WriteTimeout:    0,
		ShutdownTimeout: 10,
	}
}

// Load reads path, parsing it as JSON into a Config. If path does not
// exist, Create writes one first, using override when non-nil or
// Default otherwise.
func Load(path string, override *Config) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := Create(path, override); err != nil {
			return cfg, fmt.Errorf("config: failed creating %s: %w", path, err)
		}
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed reading %s: %w", path, err)
	}
	if err := json.Unmarshal(file, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed unmarshalling %s: %w", path, err)
	}
	return cfg, nil
}

// Create writes path with override's contents, or Default if override
// is nil.
func Create(path string, override *Config) error {
	cfg := Default()
	if override != nil {
		cfg = *override
	}

	file, err := json.MarshalIndent(&cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: failed marshalling: %w", err)
	}
	if err := os.WriteFile(path, file, 0644); err != nil {
		return fmt.Errorf("config: failed writing %s: %w", path, err)
	}
	return nil
}
