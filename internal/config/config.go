package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the crawler.
type Config struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Simulation
	Arena Arena `yaml:"arena"`
	Seed  int64 `yaml:"seed"` // 0 means time-derived

	// Persistence
	Save Save `yaml:"save"`
}

// Arena holds the playfield geometry, in pixels.
type Arena struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Save holds persistence settings. Backend "json" uses a local file;
// "postgres" uses the database settings.
type Save struct {
	Backend         string         `yaml:"backend"`
	Path            string         `yaml:"path"` // json backend
	Slot            string         `yaml:"slot"` // postgres backend
	AutosaveSeconds int            `yaml:"autosave_seconds"`
	Database        DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Default returns the config with tuned defaults.
func Default() Config {
	return Config{
		LogLevel: "info",
		Arena: Arena{
			Width:  1200,
			Height: 800,
		},
		Save: Save{
			Backend:         "json",
			Path:            "saves/crawler.json",
			Slot:            "default",
			AutosaveSeconds: 30,
			Database: DatabaseConfig{
				Host:     "127.0.0.1",
				Port:     5432,
				User:     "crawler",
				Password: "crawler",
				DBName:   "crawler",
				SSLMode:  "disable",
			},
		},
	}
}

// Load loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c Config) Validate() error {
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return fmt.Errorf("arena size %gx%g must be positive", c.Arena.Width, c.Arena.Height)
	}
	switch c.Save.Backend {
	case "json", "postgres":
	default:
		return fmt.Errorf("unknown save backend %q", c.Save.Backend)
	}
	return nil
}
