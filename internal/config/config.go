package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const ConfigFile = "blog.toml"

// DefaultDataFile is the seed file used when none is configured.
const DefaultDataFile = "blog.json"

// DefaultPort is the HTTP port used when none is configured.
const DefaultPort = 8080

// Config holds the blog server configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Search SearchConfig `toml:"search"`
}

// ServerConfig defines HTTP server settings.
type ServerConfig struct {
	Port int `toml:"port"`
}

// DataConfig defines where the seed data lives.
type DataConfig struct {
	File string `toml:"file"`
}

// SearchConfig controls the full-text index.
type SearchConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: DefaultPort},
		Data:   DataConfig{File: DefaultDataFile},
		Search: SearchConfig{Enabled: true},
	}
}

// Load reads configuration from the given directory.
// Returns default config if the file doesn't exist.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Apply defaults for missing values
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Data.File == "" {
		cfg.Data.File = DefaultDataFile
	}

	return &cfg, nil
}

// Save writes the configuration to the given directory.
func (c *Config) Save(dir string) error {
	path := filepath.Join(dir, ConfigFile)

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
