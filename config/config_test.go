package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	override := &Config{
		LogLevel:        "debug",
		MaxConnections:  5,
		ReadTimeout:     30,
		WriteTimeout:    30,
		ShutdownTimeout: 2,
	}
	if err := Create(path, override); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != *override {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, *override)
	}
}

func TestLoadCreatesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	got, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != Default() {
		t.Fatalf("expected default config, got %+v", got)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected Load to have created the file: %v", err)
	}
}
