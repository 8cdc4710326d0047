// Package config handles application configuration via environment variables
// and an optional YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configurable values for the app.
type Config struct {
	Env      string `mapstructure:"env" validate:"required"`
	LogLevel string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`

	Addr            string        `mapstructure:"addr" validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`

	// RateLimit is requests per second across all clients; 0 disables it.
	RateLimit          float64  `mapstructure:"rate_limit" validate:"gte=0"`
	RateLimitBurst     int      `mapstructure:"rate_limit_burst" validate:"gte=0"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	// ReportEndpoint receives batched usage events; empty disables reporting.
	ReportEndpoint   string        `mapstructure:"report_endpoint" validate:"omitempty,url"`
	ReportBatchSize  int           `mapstructure:"report_batch_size" validate:"gt=0"`
	ReportInterval   time.Duration `mapstructure:"report_interval" validate:"gt=0"`
	ReportRetryDelay time.Duration `mapstructure:"report_retry_delay" validate:"gte=0"`
}

var defaults = map[string]interface{}{
	"env":                  "development",
	"log_level":            "",
	"addr":                 ":8080",
	"read_timeout":         "5s",
	"write_timeout":        "10s",
	"idle_timeout":         "120s",
	"shutdown_timeout":     "10s",
	"rate_limit":           50.0,
	"rate_limit_burst":     100,
	"cors_allowed_origins": []string{"*"},
	"report_endpoint":      "",
	"report_batch_size":    50,
	"report_interval":      "30s",
	"report_retry_delay":   "2s",
}

// Load reads the configuration. Environment variables (the upper-cased key,
// e.g. RATE_LIMIT) take precedence over the YAML file named by CONFIG_FILE,
// which takes precedence over the defaults.
func Load() (*Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %q: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
