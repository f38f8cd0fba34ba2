package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

const (
	ModePoll     = "poll"
	ModeFsnotify = "fsnotify"
	ModeAuto     = "auto"

	DefaultExtension = ".txt"
	DefaultInterval  = time.Second
	DefaultDebounce  = 100 * time.Millisecond
)

type Config struct {
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
	Report  ReportConfig  `yaml:"report"`
}

// WatchConfig describes what is watched. It does not change after startup.
type WatchConfig struct {
	Root         string        `yaml:"path"`
	Extension    string        `yaml:"extension"`
	MagicText    string        `yaml:"magic"`
	PollInterval time.Duration `yaml:"interval"` // e.g. 1s
	Mode         string        `yaml:"mode"`     // "poll", "fsnotify", "auto"
	Debounce     time.Duration `yaml:"debounce"` // settle time after a change notification
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "text", "json"
}

type ReportConfig struct {
	Cron string `yaml:"cron"` // empty disables the status report
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Watch: WatchConfig{
			Extension:    DefaultExtension,
			PollInterval: DefaultInterval,
			Mode:         ModePoll,
			Debounce:     DefaultDebounce,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks the configuration and makes the watch root absolute.
func (c *Config) Validate() error {
	if c.Watch.Root == "" {
		return errors.New("watch path is required")
	}
	abs, err := filepath.Abs(c.Watch.Root)
	if err != nil {
		return fmt.Errorf("resolving watch path: %w", err)
	}
	c.Watch.Root = abs

	if c.Watch.Extension == "" {
		c.Watch.Extension = DefaultExtension
	}
	if c.Watch.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.Watch.PollInterval)
	}

	if c.Watch.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative, got %s", c.Watch.Debounce)
	}

	switch c.Watch.Mode {
	case "":
		c.Watch.Mode = ModePoll
	case ModePoll, ModeFsnotify, ModeAuto:
	default:
		return fmt.Errorf("unknown watch mode %q", c.Watch.Mode)
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}

	return nil
}

// Seconds converts a fractional number of seconds into a duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
