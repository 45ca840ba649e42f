// Package config handles streambar configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config is the root configuration structure for streambar.
type Config struct {
	// Global settings
	Global GlobalConfig `yaml:"global" mapstructure:"global"`

	// Database settings
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`

	// Sidebar settings
	Sidebar SidebarConfig `yaml:"sidebar" mapstructure:"sidebar"`
}

// GlobalConfig contains global settings.
type GlobalConfig struct {
	// DataDir is where streambar stores its data (default: ~/.local/share/streambar).
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	// ConfigDir is where config files are stored (default: ~/.config/streambar).
	ConfigDir string `yaml:"config_dir" mapstructure:"config_dir"`
}

// DatabaseConfig contains database settings.
type DatabaseConfig struct {
	// Path is the SQLite database file path.
	Path string `yaml:"path" mapstructure:"path"`

	// BusyTimeout is how long to wait for a locked database (milliseconds).
	BusyTimeoutMs int `yaml:"busy_timeout_ms" mapstructure:"busy_timeout_ms"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console).
	Format string `yaml:"format" mapstructure:"format"`

	// File is an optional log file path. The TUI always logs to a file.
	File string `yaml:"file" mapstructure:"file"`

	// EnableCaller adds caller information to logs.
	EnableCaller bool `yaml:"enable_caller" mapstructure:"enable_caller"`
}

// SidebarConfig contains topic list and TUI settings.
type SidebarConfig struct {
	// MaxTopics is how many recent topics are always listed.
	MaxTopics int `yaml:"max_topics" mapstructure:"max_topics"`

	// MaxTopicsWithUnread caps the topic rows of the truncated view.
	MaxTopicsWithUnread int `yaml:"max_topics_with_unread" mapstructure:"max_topics_with_unread"`

	// InitialTopics is how many topics per stream the client caches before
	// the user asks for more.
	InitialTopics int `yaml:"initial_topics" mapstructure:"initial_topics"`

	// PollInterval is how often new messages are picked up.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`

	// HistoryTimeout bounds one topic history fetch.
	HistoryTimeout time.Duration `yaml:"history_timeout" mapstructure:"history_timeout"`

	// Theme is the color theme (default, high-contrast).
	Theme string `yaml:"theme" mapstructure:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Global: GlobalConfig{
			DataDir:   filepath.Join(homeDir, ".local", "share", "streambar"),
			ConfigDir: filepath.Join(homeDir, ".config", "streambar"),
		},
		Database: DatabaseConfig{
			Path:          "", // Will be set to DataDir/streambar.db
			BusyTimeoutMs: 5000,
		},
		Logging: LoggingConfig{
			Level:        "info",
			Format:       "console",
			EnableCaller: false,
		},
		Sidebar: SidebarConfig{
			MaxTopics:           5,
			MaxTopicsWithUnread: 8,
			InitialTopics:       10,
			PollInterval:        2 * time.Second,
			HistoryTimeout:      5 * time.Second,
			Theme:               "default",
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Database.BusyTimeoutMs < 0 {
		return fmt.Errorf("database.busy_timeout_ms must not be negative")
	}

	if c.Sidebar.MaxTopics < 1 {
		return fmt.Errorf("sidebar.max_topics must be at least 1")
	}

	if c.Sidebar.MaxTopicsWithUnread < c.Sidebar.MaxTopics {
		return fmt.Errorf("sidebar.max_topics_with_unread must be at least sidebar.max_topics")
	}

	if c.Sidebar.InitialTopics < 1 {
		return fmt.Errorf("sidebar.initial_topics must be at least 1")
	}

	if c.Sidebar.PollInterval < 100*time.Millisecond {
		return fmt.Errorf("sidebar.poll_interval must be at least 100ms")
	}

	if c.Sidebar.HistoryTimeout <= 0 {
		return fmt.Errorf("sidebar.history_timeout must be positive")
	}

	switch c.Sidebar.Theme {
	case "default", "high-contrast":
		// ok
	default:
		return fmt.Errorf("sidebar.theme must be one of default, high-contrast")
	}

	switch c.Logging.Format {
	case "console", "json":
		// ok
	default:
		return fmt.Errorf("logging.format must be one of console, json")
	}

	return nil
}

// EnsureDirectories creates required directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Global.DataDir,
		c.Global.ConfigDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// DatabasePath returns the full database path.
func (c *Config) DatabasePath() string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return filepath.Join(c.Global.DataDir, "streambar.db")
}

// LogFilePath returns the log file path used when the TUI owns the terminal.
func (c *Config) LogFilePath() string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	return filepath.Join(c.Global.DataDir, "streambar.log")
}
