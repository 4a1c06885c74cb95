package commons

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"tecelar/internal/config"
)

type fileConfig struct {
	Backend struct {
		BaseURL        string `yaml:"baseUrl"`
		Timeout        string `yaml:"timeout"`
		UploadMaxBytes int64  `yaml:"uploadMaxBytes"`
	} `yaml:"backend"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// LoadConfig reads a yaml config file, filling anything left unset from the
// environment-backed defaults.
func LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if fc.Backend.BaseURL != "" {
		cfg.Backend.BaseURL = fc.Backend.BaseURL
	}
	if fc.Backend.Timeout != "" {
		timeout, err := time.ParseDuration(fc.Backend.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parsing backend timeout: %w", err)
		}
		cfg.Backend.Timeout = timeout
	}
	if fc.Backend.UploadMaxBytes > 0 {
		cfg.Backend.UploadMaxBytes = fc.Backend.UploadMaxBytes
	}
	if fc.Log.Level != "" {
		cfg.Log.Level = fc.Log.Level
	}

	return cfg, nil
}
