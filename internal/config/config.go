package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	EnvDefaultKey = "PONTIFEX_DEFAULT_KEY"
	EnvLogLevel   = "PONTIFEX_LOG_LEVEL"
	EnvLogOutput  = "PONTIFEX_LOG_OUTPUT"
)

// Config represents the application configuration
type Config struct {
	DefaultKey string `toml:"default_key"`
	LogLevel   string `toml:"log_level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogOutput  string `toml:"log_output" validate:"oneof=console stderr json"`
}

func defaults() Config {
	return Config{
		LogLevel:  "warn",
		LogOutput: "console",
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetKeyringPath returns the directory holding stored keys
func GetKeyringPath() string {
	return filepath.Join(GetXDGDataHome(), "pontifex", "keys")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "pontifex", "config.toml")
}

// LoadConfig loads the config file, creating it with defaults on first use,
// then applies .env and PONTIFEX_* environment overrides.
func LoadConfig() (*Config, error) {
	cfg, err := loadFile()
	if err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile() (*Config, error) {
	configPath := GetConfigFilePath()

	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDefaultKey); v != "" {
		cfg.DefaultKey = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogOutput); v != "" {
		cfg.LogOutput = v
	}
}

// Validate checks the config values
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	cfg := defaults()
	if err := save(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func save(cfg *Config) error {
	configPath := GetConfigFilePath()

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

// SetDefaultKey sets the default key in the config file.
// Environment overrides are not written back.
func SetDefaultKey(keyName string) error {
	cfg, err := loadFile()
	if err != nil {
		return err
	}
	cfg.DefaultKey = keyName
	return save(cfg)
}
