// Package config loads the client configuration from ~/.icare/config.yaml,
// with environment variables (ICARE_*) taking precedence over the file and a
// .env file in the working directory loaded first.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const fileName = "config.yaml"

// Config holds all iCare client configuration.
type Config struct {
	// Server settings
	Server ServerConfig `yaml:"server"`

	// Audio capture and playback
	Audio AudioConfig `yaml:"audio"`

	// UI preferences
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the backend endpoint.
type ServerConfig struct {
	BaseURL     string `yaml:"base_url"`
	ChatTimeout string `yaml:"chat_timeout"`
}

// AudioConfig configures the external recorder and player binaries.
type AudioConfig struct {
	// Recorder command, e.g. "arecord" or "sox". Empty disables voice input.
	Recorder string `yaml:"recorder"`
	// Player command for bot voice replies, e.g. "aplay" or "mpg123".
	Player string `yaml:"player"`
	// Playback of bot voice replies on/off.
	Speaker bool `yaml:"speaker"`
}

// UIConfig configures the chat interface.
type UIConfig struct {
	Theme string `yaml:"theme"` // auto, light, dark
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:     "http://172.16.217.175:8000",
			ChatTimeout: "30s",
		},
		Audio: AudioConfig{
			Recorder: "arecord",
			Player:   "aplay",
			Speaker:  true,
		},
		UI: UIConfig{
			Theme: "auto",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "icare.log",
		},
	}
}

// DefaultPath resolves the config file path under the per-user data dir.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".icare", fileName), nil
}

// Load reads configuration from a YAML file. A missing file yields defaults.
// A .env file in the working directory, if any, is loaded before the ICARE_*
// overrides apply.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes configuration to a YAML file, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ICARE_BASE_URL"); v != "" {
		c.Server.BaseURL = v
	}
	if v := os.Getenv("ICARE_CHAT_TIMEOUT"); v != "" {
		c.Server.ChatTimeout = v
	}
	if v := os.Getenv("ICARE_RECORDER"); v != "" {
		c.Audio.Recorder = v
	}
	if v := os.Getenv("ICARE_PLAYER"); v != "" {
		c.Audio.Player = v
	}
	if v := os.Getenv("ICARE_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("ICARE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// GetChatTimeout returns the chat timeout as a duration.
func (c *Config) GetChatTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ChatTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
