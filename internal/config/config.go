// Package config loads cavecrawl's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// PathEnv names the environment variable that points at the config file.
const PathEnv = "CAVECRAWL_CONFIG"

// Config holds all cavecrawl configuration.
type Config struct {
	Game      GameConfig      `yaml:"game"`
	Save      SaveConfig      `yaml:"save"`
	SSH       SSHConfig       `yaml:"ssh"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// GameConfig holds world and session settings.
type GameConfig struct {
	MapPath string `yaml:"map_path"` // empty means the embedded map
	Start   *Start `yaml:"start"`    // nil means the map's starting room
	Seed    int64  `yaml:"seed"`     // 0 means time-seeded
}

// Start overrides the player's starting coordinate.
type Start struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// SaveConfig selects where quit sessions are stored.
type SaveConfig struct {
	Backend     string      `yaml:"backend"` // json, postgres or redis
	Dir         string      `yaml:"dir"`
	DatabaseURL string      `yaml:"database_url"`
	Redis       RedisConfig `yaml:"redis"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// SSHConfig holds settings for the SSH server.
type SSHConfig struct {
	Port    int    `yaml:"port"`
	HostKey string `yaml:"host_key"`
}

// TelemetryConfig toggles OpenTelemetry export.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	switch cfg.Save.Backend {
	case "json", "postgres", "redis":
	default:
		return nil, fmt.Errorf("config: unknown save backend %q", cfg.Save.Backend)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Save.Backend == "" {
		c.Save.Backend = "json"
	}
	if c.Save.Dir == "" {
		c.Save.Dir = filepath.Join(dataHome(), "cavecrawl", "saves")
	}
	if c.Save.Redis.Address == "" {
		c.Save.Redis.Address = "localhost:6379"
	}
	if c.SSH.Port == 0 {
		c.SSH.Port = 2222
	}
	if c.SSH.HostKey == "" {
		c.SSH.HostKey = filepath.Join(dataHome(), "cavecrawl", "host_key")
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("CAVECRAWL_SAVE_BACKEND"); v != "" {
		c.Save.Backend = v
	}
	if v := os.Getenv("CAVECRAWL_DATABASE_URL"); v != "" {
		c.Save.DatabaseURL = v
	}
	if v := os.Getenv("CAVECRAWL_REDIS_ADDRESS"); v != "" {
		c.Save.Redis.Address = v
	}
	if v := os.Getenv("CAVECRAWL_SSH_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: CAVECRAWL_SSH_PORT: %w", err)
		}
		c.SSH.Port = port
	}
	return nil
}

// dataHome returns $XDG_DATA_HOME, falling back to ~/.local/share.
func dataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}
