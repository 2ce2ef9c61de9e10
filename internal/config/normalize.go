package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScan()
	c.normalizeVideo()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.SourceDir, err = expandPath(c.Paths.SourceDir); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeScan() {
	if len(c.Scan.Extensions) == 0 {
		c.Scan.Extensions = defaultExtensions()
	}
	normalized := make([]string, 0, len(c.Scan.Extensions))
	for _, ext := range c.Scan.Extensions {
		cleaned := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if cleaned == "" {
			continue
		}
		normalized = append(normalized, cleaned)
	}
	c.Scan.Extensions = normalized
	if c.Scan.MinSizeMB < 0 {
		c.Scan.MinSizeMB = 0
	}
}

func (c *Config) normalizeVideo() {
	c.Video.HWAccel = strings.ToLower(strings.TrimSpace(c.Video.HWAccel))
	if c.Video.HWAccel == "" {
		c.Video.HWAccel = defaultHWAccel
	}
	if strings.TrimSpace(c.Video.NvencPreset) == "" {
		c.Video.NvencPreset = defaultNvencPreset
	}
	if strings.TrimSpace(c.Video.CPUPreset) == "" {
		c.Video.CPUPreset = defaultCPUPreset
	}
	if c.Video.Threads <= 0 {
		c.Video.Threads = defaultThreads
	}
}

func (c *Config) normalizeLogging() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
}
