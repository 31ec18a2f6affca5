package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	"github.com/vietddude/tigscan/internal/infra/api"
)

var validate = validator.New()

// Load reads configuration from a YAML file. A missing file yields the
// defaults, so the CLI works against the default API without one.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		// Expand environment variables in the YAML content
		expandedData := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if v := os.Getenv("TIGSCAN_API_URL"); v != "" && cfg.API.BaseURL == "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("TIGSCAN_API_KEY"); v != "" && cfg.API.APIKey == "" {
		cfg.API.APIKey = v
	}

	def := api.DefaultConfig
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = def.BaseURL
	}
	if cfg.API.Version == "" {
		cfg.API.Version = def.APIVersion
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = def.Timeout
	}
	if cfg.API.Retries == 0 {
		cfg.API.Retries = def.Retries
	}
	if cfg.API.RetryDelay == 0 {
		cfg.API.RetryDelay = def.RetryDelay
	}

	cfg.Cache.Backend = strings.ToLower(cfg.Cache.Backend)
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = api.DefaultCacheTTL
	}
	if cfg.Pagination.PageSize == 0 {
		cfg.Pagination.PageSize = 25
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
