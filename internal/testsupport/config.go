// Package testsupport provides shared helpers for package tests: throwaway
// configurations backed by temp directories and media-sized fixture files.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"conform/internal/config"
)

// ConfigOption customizes the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// The external tool commands default to "sh" so preflight binary checks pass
// without ffmpeg installed.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.SourceDir = filepath.Join(base, "library")
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Scan.MinSizeMB = 0
	cfg.Daemon.ScanIntervalSeconds = 1
	cfg.Daemon.ErrorCooldownSeconds = 1
	cfg.Tools.FFmpeg = "sh"
	cfg.Tools.FFprobe = "sh"

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	if err := os.MkdirAll(cfg.Paths.SourceDir, 0o755); err != nil {
		t.Fatalf("create source dir: %v", err)
	}
	return &cfg
}
