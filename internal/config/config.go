package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Backend BackendConfig
	Log     LogConfig
}

type BackendConfig struct {
	// BaseURL is the API host, without the /api suffix. Image URLs under
	// /uploads are served from the same host.
	BaseURL        string
	Timeout        time.Duration
	UploadMaxBytes int64
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("API_BASE_URL", "http://localhost:8080")
	viper.SetDefault("API_TIMEOUT", "120s")
	viper.SetDefault("UPLOAD_MAX_BYTES", int64(60*1024*1024))
	viper.SetDefault("LOG_LEVEL", "info")

	timeout, err := time.ParseDuration(viper.GetString("API_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Backend: BackendConfig{
			BaseURL:        viper.GetString("API_BASE_URL"),
			Timeout:        timeout,
			UploadMaxBytes: viper.GetInt64("UPLOAD_MAX_BYTES"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
