package config

import (
	"time"

	"github.com/vietddude/tigscan/internal/infra/api"
	redisclient "github.com/vietddude/tigscan/internal/infra/redis"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	API        APIConfig          `yaml:"api"`
	Cache      CacheConfig        `yaml:"cache"`
	Redis      redisclient.Config `yaml:"redis"`
	Logging    LoggingConfig      `yaml:"logging"`
	Server     ServerConfig       `yaml:"server"`
	Pagination PaginationConfig   `yaml:"pagination"`
}

// APIConfig holds explorer API client settings.
type APIConfig struct {
	BaseURL    string        `yaml:"base_url"    validate:"required"`
	APIKey     string        `yaml:"api_key"`
	Version    string        `yaml:"version"`
	Timeout    time.Duration `yaml:"timeout"     validate:"gte=0"`
	Retries    int           `yaml:"retries"     validate:"gte=0,lte=10"`
	RetryDelay time.Duration `yaml:"retry_delay" validate:"gte=0"`
}

// CacheConfig selects the response cache backend.
type CacheConfig struct {
	Backend string        `yaml:"backend" validate:"oneof=none memory redis"` // none, memory, redis
	Size    int           `yaml:"size"    validate:"gte=0"`                    // memory backend only
	TTL     time.Duration `yaml:"ttl"     validate:"gte=0"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// ServerConfig holds the health and metrics server settings. Port 0 disables it.
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0,lte=65535"`
}

// PaginationConfig holds list defaults.
type PaginationConfig struct {
	PageSize int `yaml:"page_size" validate:"gte=1,lte=1000"`
}

// ClientConfig converts the API section into an api.Config.
func (c *AppConfig) ClientConfig() api.Config {
	return api.Config{
		BaseURL:    c.API.BaseURL,
		APIKey:     c.API.APIKey,
		APIVersion: c.API.Version,
		Timeout:    c.API.Timeout,
		Retries:    c.API.Retries,
		RetryDelay: c.API.RetryDelay,
	}
}
