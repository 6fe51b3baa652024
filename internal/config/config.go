package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const appName = "whogoesfirst"

// ErrMissingRootPath indicates no catalog root path was configured.
var ErrMissingRootPath = errors.New("root path to the card catalog must be defined")

// ErrMissingPreferredLanguage indicates no preferred language was configured.
var ErrMissingPreferredLanguage = errors.New("preferred language must be defined")

// Config represents the application configuration
type Config struct {
	RootPath          string `toml:"root_path" env:"WHOGOESFIRST_ROOT_PATH"`
	PreferredLanguage string `toml:"preferred_language" env:"WHOGOESFIRST_LANG"`
	StateBackend      string `toml:"state_backend" env:"WHOGOESFIRST_STATE_BACKEND"`
	StatePath         string `toml:"state_path" env:"WHOGOESFIRST_STATE_PATH"`
	Debug             bool   `toml:"debug" env:"WHOGOESFIRST_DEBUG"`
}

// DefaultConfig returns the configuration written by a fresh init.
func DefaultConfig() *Config {
	return &Config{
		PreferredLanguage: "en",
		StateBackend:      "file",
	}
}

// Validate checks the options every session needs before any I/O happens.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.RootPath) == "" {
		return ErrMissingRootPath
	}
	if strings.TrimSpace(c.PreferredLanguage) == "" {
		return ErrMissingPreferredLanguage
	}
	return nil
}

// StateDir returns the directory deck state is kept in.
func (c *Config) StateDir() string {
	if c.StatePath != "" {
		return c.StatePath
	}
	return GetStateDir()
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

// GetStateDir returns the default directory for deck state
func GetStateDir() string {
	return filepath.Join(GetXDGDataHome(), appName)
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), appName, "config.toml")
}

// LoadConfig loads the config file, applying environment overrides.
// A missing file yields the default configuration.
func LoadConfig() (*Config, error) {
	return LoadConfigFile(GetConfigFilePath())
}

// LoadConfigFile loads the config file at path, applying environment overrides.
func LoadConfigFile(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, config); err != nil {
			return nil, fmt.Errorf("error decoding config file: %v", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return config, nil
}

// InitConfig writes the default config file unless one already exists, and
// returns the config in effect.
func InitConfig() (*Config, bool, error) {
	configPath := GetConfigFilePath()
	if _, err := os.Stat(configPath); err == nil {
		config, err := LoadConfigFile(configPath)
		return config, false, err
	}

	config := DefaultConfig()
	if err := SaveConfigFile(configPath, config); err != nil {
		return nil, false, err
	}
	return config, true, nil
}

// SaveConfigFile encodes config to path, creating the directory if needed.
func SaveConfigFile(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %v", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %v", err)
	}

	return nil
}

// SetPreferredLanguage sets the preferred language in the config file
func SetPreferredLanguage(lang string) error {
	if strings.TrimSpace(lang) == "" {
		return ErrMissingPreferredLanguage
	}

	configPath := GetConfigFilePath()
	config := DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, config); err != nil {
			return fmt.Errorf("error decoding config file: %v", err)
		}
	}

	config.PreferredLanguage = lang
	return SaveConfigFile(configPath, config)
}
