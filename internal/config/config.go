package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Auth struct {
		Secret    string `yaml:"secret"`
		UsersFile string `yaml:"users_file"`
	} `yaml:"auth"`
	Weather struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"weather"`
}

// LoadConfig reads configuration from the specified YAML file, then applies
// environment overrides (PORT, JWT_SECRET, USERS_FILE, OWM_API_KEY) and
// defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	applyEnvOverrides(config)
	applyDefaults(config)
	return config, nil
}

func applyEnvOverrides(c *Config) {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.Secret = v
	}
	if v := os.Getenv("USERS_FILE"); v != "" {
		c.Auth.UsersFile = v
	}
	if v := os.Getenv("OWM_API_KEY"); v != "" {
		c.Weather.APIKey = v
	}
}

func applyDefaults(c *Config) {
	if c.Server.Port == "" {
		c.Server.Port = ":4000"
	}
	if c.Auth.UsersFile == "" {
		c.Auth.UsersFile = "users.json"
	}
}
