package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateDownload(); err != nil {
		return err
	}
	return c.validateWhisper()
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateDownload() error {
	if c.Download.MaxAttempts < 1 {
		return errors.New("download.max_attempts must be at least 1")
	}
	if c.Download.BaseDelaySeconds < 0 {
		return errors.New("download.base_delay_seconds cannot be negative")
	}
	return nil
}

func (c *Config) validateWhisper() error {
	if !slices.Contains(WhisperModels, c.Whisper.Model) {
		return fmt.Errorf("whisper.model must be one of %s (got %q)",
			strings.Join(WhisperModels, ", "), c.Whisper.Model)
	}
	return nil
}
