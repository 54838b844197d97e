package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName            string        `mapstructure:"app_name"`
	Env                string        `mapstructure:"app_env"`
	LogLevel           string        `mapstructure:"log_level"`
	BaseURL            string        `mapstructure:"rest_base_url"`
	HeadersFile        string        `mapstructure:"rest_headers_file"`
	HTTPLogLevel       string        `mapstructure:"http_log_level"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "restctl")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("rest_base_url", "")
	v.SetDefault("rest_headers_file", "")
	v.SetDefault("http_log_level", "none")
	v.SetDefault("http_timeout_seconds", 0) // library default

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.HTTPTimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid http_timeout_seconds (must be zero or positive seconds)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	cfg.HTTPLogLevel = strings.ToLower(strings.TrimSpace(cfg.HTTPLogLevel))
	switch cfg.HTTPLogLevel {
	case "none", "basic", "headers", "body":
	default:
		return nil, fmt.Errorf("invalid http_log_level %q (expected none, basic, headers or body)", cfg.HTTPLogLevel)
	}

	return &cfg, nil
}
