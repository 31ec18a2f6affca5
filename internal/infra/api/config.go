package api

import "time"

// Config holds the connection settings of a Client. It is copied into the
// client at construction and never changes afterwards.
type Config struct {
	BaseURL    string
	APIKey     string
	APIVersion string
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
}

// DefaultConfig provides the defaults used for unset fields.
var DefaultConfig = Config{
	BaseURL:    "/api",
	APIVersion: "v1",
	Timeout:    30 * time.Second,
	Retries:    3,
	RetryDelay: 1 * time.Second,
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultConfig.BaseURL
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultConfig.APIVersion
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultConfig.Timeout
	}
	if c.Retries <= 0 {
		c.Retries = DefaultConfig.Retries
	}
	if c.RetryDelay < 0 {
		c.RetryDelay = 0
	}
	return c
}
