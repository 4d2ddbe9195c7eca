// Package config provides configuration management for Expense Tray.
// It handles loading, saving, and watching the tray and window settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yllada/expense-tray/common"
)

// Config represents the application configuration.
// All settings are persisted to a YAML file in the user's config directory.
type Config struct {
	// StayOnTop keeps the main window up when it loses focus.
	StayOnTop bool `yaml:"stay_on_top"`
	// HideOnFocusLoss hides the main window when another window takes focus.
	HideOnFocusLoss bool `yaml:"hide_on_focus_loss"`
	// StartHidden starts with only the tray icon visible.
	StartHidden bool `yaml:"start_hidden"`
	// ClickWindow is the double-click classification window.
	ClickWindow time.Duration `yaml:"click_window"`
	// PollInterval is the GUI tick that drains pending tray commands.
	PollInterval time.Duration `yaml:"poll_interval"`
	// AnimationDuration is the show/hide fade length; 0 disables the fade.
	AnimationDuration time.Duration `yaml:"animation_duration"`
	// QueueCapacity is how many tray commands may wait for the GUI tick.
	QueueCapacity int `yaml:"queue_capacity"`
	// ShutdownTimeout bounds the wait for the tray listener on exit.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// LogLevel is one of "debug", "info", "warn" or "error".
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		StayOnTop:         false,
		HideOnFocusLoss:   true,
		StartHidden:       true,
		ClickWindow:       common.DefaultClickWindow,
		PollInterval:      common.DefaultPollInterval,
		AnimationDuration: common.DefaultAnimationDuration,
		QueueCapacity:     common.DefaultQueueCapacity,
		ShutdownTimeout:   common.DefaultShutdownTimeout,
		LogLevel:          "info",
	}
}

// DefaultPath returns the location of the configuration file.
func DefaultPath() (string, error) {
	dir, err := common.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, common.ConfigFileName), nil
}

// Load loads the configuration from path.
// If the file doesn't exist, it creates one with default values.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := cfg.Save(path); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	return Read(path)
}

// Read parses the configuration at path without creating it.
// Keys missing from the file keep their default values.
func Read(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrConfigLoad, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	config := DefaultConfig()
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("%w: error parsing configuration: %v", common.ErrConfigLoad, err)
	}

	config.normalize()
	return config, nil
}

// normalize brings out-of-range values back into their supported range.
// Values are corrected rather than rejected so a hand-edited file never
// keeps the application from starting.
func (c *Config) normalize() {
	c.ClickWindow = common.Clamp(c.ClickWindow, common.MinClickWindow, common.MaxClickWindow)
	c.PollInterval = common.Clamp(c.PollInterval, common.MinPollInterval, common.MaxPollInterval)
	if c.AnimationDuration < 0 {
		c.AnimationDuration = 0
	}
	if c.QueueCapacity < 1 {
		c.QueueCapacity = common.DefaultQueueCapacity
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = common.DefaultShutdownTimeout
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = "info"
	}
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("%w: error creating config directory: %v", common.ErrConfigSave, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: error serializing configuration: %v", common.ErrConfigSave, err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}

	return nil
}
