package service

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the full service configuration.
type Config struct {
	Listen       string `yaml:"listen"`
	DBPath       string `yaml:"db_path"`
	SynonymsPath string `yaml:"synonyms_path"`
	MaxInputKB   int    `yaml:"max_input_kb"`

	// AuthPasswordHash is a bcrypt hash; when set, all /api routes
	// require HTTP Basic Auth with a password matching the hash.
	AuthPasswordHash string `yaml:"auth_password_hash"`
}

// DefaultConfig returns sane defaults.
func DefaultConfig() *Config {
	return &Config{
		Listen:     ":8086",
		DBPath:     "db/evaluations.db",
		MaxInputKB: 256,
	}
}

// LoadConfig reads and parses a YAML config file. Returns DefaultConfig
// merged with the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that required fields are present and values are sane.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.MaxInputKB <= 0 {
		return fmt.Errorf("max_input_kb must be > 0")
	}
	return nil
}
