package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateVideo(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateDaemon(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.SourceDir) == "" {
		return errors.New("paths.source_dir must be set")
	}
	return nil
}

func (c *Config) validateScan() error {
	if len(c.Scan.Extensions) == 0 {
		return errors.New("scan.extensions must list at least one extension")
	}
	return nil
}

func (c *Config) validateVideo() error {
	switch c.Video.HWAccel {
	case "cuda", "software":
	default:
		return fmt.Errorf("video.hw_accel must be \"cuda\" or \"software\", got %q", c.Video.HWAccel)
	}
	for _, tier := range []struct {
		name  string
		value string
	}{
		{"720p", c.Video.Bitrates.Tier720},
		{"1080p", c.Video.Bitrates.Tier1080},
		{"2160p", c.Video.Bitrates.Tier2160},
	} {
		if strings.TrimSpace(tier.value) == "" {
			return fmt.Errorf("video.bitrates.%s must be set", tier.name)
		}
	}
	return nil
}

func (c *Config) validateAudio() error {
	if strings.TrimSpace(c.Audio.Bitrate) == "" {
		return errors.New("audio.bitrate must be set")
	}
	return nil
}

func (c *Config) validateDaemon() error {
	if c.Daemon.ScanIntervalSeconds <= 0 {
		return errors.New("daemon.scan_interval_seconds must be positive")
	}
	if c.Daemon.ErrorCooldownSeconds <= 0 {
		return errors.New("daemon.error_cooldown_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("log_format must be \"console\", \"json\", or empty for auto; got %q", c.LogFormat)
	}
	return nil
}
