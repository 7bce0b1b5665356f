package config

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServerName    string `yaml:"server_name"`
	ServerVersion string `yaml:"server_version"`
	DatabasePath  string `yaml:"database_path"`
}

func DefaultConfig() *Config {
	return &Config{
		ServerName:    "Memory Manager",
		ServerVersion: "0.1.0",
		DatabasePath:  "data/memories.db",
	}
}

// LoadConfig reads config/application.yaml. A missing file is not an error;
// MCP clients usually launch the server without one, so defaults apply.
func LoadConfig() (*Config, error) {
	file, err := os.Open("config/application.yaml")
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("No config file found, using defaults")
			return DefaultConfig(), nil
		}
		slog.Error("Error opening config file", "error", err)
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("Error reading config file", "error", err)
		return nil, err
	}

	config := DefaultConfig()
	err = yaml.Unmarshal(data, config)
	if err != nil {
		slog.Error("Error parsing YAML", "error", err)
		return nil, err
	}

	return config, nil
}
