package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppName names the config and data directories.
const AppName = "projector"

// EnvPrefix is prepended to environment overrides, e.g. PROJECTOR_HISTORY_BACKEND.
const EnvPrefix = "PROJECTOR"

// History backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Settings holds all application settings.
type Settings struct {
	DataDir string          `mapstructure:"data_dir"`
	History HistorySettings `mapstructure:"history"`
	Tax     TaxSettings     `mapstructure:"tax"`
	Logging LoggingSettings `mapstructure:"logging"`
	Output  OutputSettings  `mapstructure:"output"`
}

// HistorySettings selects where recent profiles are remembered.
type HistorySettings struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

// TaxSettings points at an optional bracket table file.
type TaxSettings struct {
	TablePath string `mapstructure:"table_path"`
}

// LoggingSettings holds log level and encoding.
type LoggingSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputSettings holds result surface preferences.
type OutputSettings struct {
	Format string `mapstructure:"format"`
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", AppName)
}

// DefaultDataDir returns the XDG-compliant data directory.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", AppName)
}

// SetDefaults registers default values for every settings key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("history.backend", BackendJSON)
	v.SetDefault("history.path", "")
	v.SetDefault("tax.table_path", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("output.format", "console")
}

// Load reads settings from cfgFile (or the standard search path when empty),
// the environment and any flags already bound to v.
func Load(v *viper.Viper, cfgFile string) (*Settings, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}

	SetDefaults(v)
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the enumerated settings.
func (s *Settings) Validate() error {
	switch s.History.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("invalid history backend %q (want %s or %s)", s.History.Backend, BackendJSON, BackendSQLite)
	}
	switch s.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", s.Logging.Level)
	}
	switch s.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s", s.Logging.Format)
	}
	if s.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	return nil
}

// HistoryPath returns the configured history location, defaulting to a file
// in the data directory named for the backend.
func (s *Settings) HistoryPath() string {
	if s.History.Path != "" {
		return s.History.Path
	}
	if s.History.Backend == BackendSQLite {
		return filepath.Join(s.DataDir, "history.db")
	}
	return filepath.Join(s.DataDir, "user_data.json")
}

// LoadEnv loads a .env file from ENV_FILE, or ./.env when present.
func LoadEnv() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}

	return nil
}
