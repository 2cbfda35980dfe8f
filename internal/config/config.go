// Package config provides configuration management for the options tracker.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"

	apperrors "options-tracker/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Export  ExportConfig  `mapstructure:"export"`
	Display DisplayConfig `mapstructure:"display"`
	Logging LoggingConfig `mapstructure:"logging"`
	Dir     string        `mapstructure:"-"` // directory the config was read from
}

// StorageConfig holds snapshot storage configuration.
type StorageConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// ExportConfig holds CSV export defaults.
type ExportConfig struct {
	Dir              string `mapstructure:"dir"`
	IncludeCancelled bool   `mapstructure:"include_cancelled"`
	Aggregate        bool   `mapstructure:"aggregate"`
}

// DisplayConfig holds terminal display configuration.
type DisplayConfig struct {
	Timezone      string `mapstructure:"timezone"` // IANA name or "Local"
	ColorEnabled  bool   `mapstructure:"color_enabled"`
	ShowCancelled bool   `mapstructure:"show_cancelled"`
	Aggregate     bool   `mapstructure:"aggregate"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// Environment overrides, applied after the config file.
const (
	EnvDB       = "OPTIONS_TRACKER_DB"
	EnvTimezone = "OPTIONS_TRACKER_TZ"
	EnvLogLevel = "OPTIONS_TRACKER_LOG_LEVEL"
)

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/options-tracker"
	}
	return filepath.Join(home, ".config", "options-tracker")
}

// Path returns the config file path inside configDir.
func Path(configDir string) string {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory. A missing
// config file is replaced by the commented template.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{Dir: configDir}
	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("storage.db_path", filepath.Join(configDir, "snapshots.db"))
	v.SetDefault("export.dir", ".")
	v.SetDefault("export.include_cancelled", false)
	v.SetDefault("export.aggregate", false)
	v.SetDefault("display.timezone", "Local")
	v.SetDefault("display.color_enabled", true)
	v.SetDefault("display.show_cancelled", false)
	v.SetDefault("display.aggregate", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", true)
	v.SetDefault("logging.file_path", filepath.Join(configDir, "logs", "options-tracker.log"))
	v.SetDefault("logging.max_size", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 30)
}

func loadConfigFile(configDir string, cfg *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		if err := createTemplateConfig(configDir); err != nil {
			return err
		}
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return err
	}
	cfg.Storage.DBPath = expandHome(cfg.Storage.DBPath)
	cfg.Export.Dir = expandHome(cfg.Export.Dir)
	cfg.Logging.FilePath = expandHome(cfg.Logging.FilePath)
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvDB); v != "" {
		cfg.Storage.DBPath = expandHome(v)
	}
	if v := os.Getenv(EnvTimezone); v != "" {
		cfg.Display.Timezone = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return apperrors.NewValidationError("display.timezone", c.Display.Timezone, err.Error())
	}
	if !validLevels[c.Logging.Level] {
		return apperrors.NewValidationError("logging.level", c.Logging.Level, "must be one of debug, info, warn, error")
	}
	if c.Storage.DBPath == "" {
		return apperrors.NewValidationError("storage.db_path", c.Storage.DBPath, "must not be empty")
	}
	if c.Logging.MaxSize < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAge < 0 {
		return apperrors.NewValidationError("logging", c.Logging.MaxSize, "rotation limits must be non-negative")
	}
	return nil
}

// Location returns the time zone activity dates are read in.
func (c *Config) Location() (*time.Location, error) {
	switch c.Display.Timezone {
	case "", "Local", "local":
		return time.Local, nil
	}
	return time.LoadLocation(c.Display.Timezone)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
