// Package api is the HTTP client of the explorer API. Every request goes
// through a retry loop with exponential backoff, a per-attempt timeout and
// typed error classification.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/vietddude/tigscan/internal/infra/metrics"
	"github.com/vietddude/tigscan/internal/schema"
)

// Cache stores successful GET response bodies by URL.
type Cache interface {
	Name() string
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// DefaultCacheTTL is how long a cached response stays fresh.
const DefaultCacheTTL = 5 * time.Minute

// Client performs requests against the explorer API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	cache      Cache
	cacheTTL   time.Duration
	monitor    *Monitor
	onRetry    RetryHook
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCache enables response caching. A zero ttl uses DefaultCacheTTL.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithMonitor shares a monitor between clients.
func WithMonitor(m *Monitor) Option {
	return func(c *Client) {
		c.monitor = m
	}
}

// WithRetryHook registers a callback invoked before every retry.
func WithRetryHook(hook RetryHook) Option {
	return func(c *Client) {
		c.onRetry = hook
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client. Unset config fields take DefaultConfig values.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg: cfg.withDefaults(),
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		cacheTTL: DefaultCacheTTL,
		monitor:  NewMonitor(),
		logger:   slog.Default(),
	}
	c.cfg.BaseURL = strings.TrimRight(c.cfg.BaseURL, "/")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config { return c.cfg }

// Monitor returns the client's monitor.
func (c *Client) Monitor() *Monitor { return c.monitor }

// Get issues a GET request and returns the raw JSON body.
func (c *Client) Get(ctx context.Context, endpoint string, opts ...RequestOption) ([]byte, error) {
	return c.Do(ctx, endpoint, opts...)
}

// Do issues a request, retrying transient failures, and returns the raw
// JSON body of the first 2xx response.
//
// Attempts are sequential. The last error is returned once attempts run
// out or a non-transient error occurs. Cancelling ctx stops the sequence
// and returns ctx.Err().
func (c *Client) Do(ctx context.Context, endpoint string, opts ...RequestOption) ([]byte, error) {
	req := &request{
		method:     http.MethodGet,
		params:     make(map[string][]string),
		header:     make(http.Header),
		timeout:    c.cfg.Timeout,
		retries:    c.cfg.Retries,
		retryDelay: c.cfg.RetryDelay,
	}
	for _, opt := range opts {
		opt(req)
	}
	if req.err != nil {
		return nil, req.err
	}

	url := c.cfg.BaseURL + endpoint
	if len(req.params) > 0 {
		sep := "?"
		if strings.Contains(url, "?") {
			sep = "&"
		}
		url += sep + req.params.Encode()
	}

	resource := resourceOf(endpoint)
	start := time.Now()

	cacheable := c.cache != nil && req.method == http.MethodGet && !req.noCache
	if cacheable {
		if body, ok := c.cacheGet(ctx, url); ok {
			metrics.RequestsTotal.WithLabelValues(resource, "cached").Inc()
			return body, nil
		}
	}

	requestID := uuid.NewString()
	logger := c.logger.With("request_id", requestID, "endpoint", endpoint)

	var body []byte
	b := backoff(req.retries, req.retryDelay, func(attempt int, d time.Duration) {
		metrics.RetriesTotal.WithLabelValues(resource).Inc()
		logger.Warn("retrying request", "attempt", attempt, "max_attempts", req.retries, "delay", d)
		if c.onRetry != nil {
			c.onRetry(Attempt{
				RequestID:   requestID,
				Endpoint:    endpoint,
				Attempt:     attempt,
				MaxAttempts: req.retries,
				Delay:       d,
			})
		}
	})

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		var err error
		body, err = c.attempt(ctx, req, url, requestID)
		if err == nil {
			metrics.AttemptsTotal.WithLabelValues(resource, "ok").Inc()
			return nil
		}
		metrics.AttemptsTotal.WithLabelValues(resource, outcomeOf(err)).Inc()
		if Classify(err) == ActionRetry {
			logger.Debug("attempt failed", "error", err)
			return retry.RetryableError(err)
		}
		return err
	})
	metrics.RequestLatency.WithLabelValues(resource).Observe(time.Since(start).Seconds())

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			metrics.RequestsTotal.WithLabelValues(resource, "canceled").Inc()
			return nil, ctxErr
		}
		if schema.IsValidationError(err) {
			metrics.ValidationErrorsTotal.WithLabelValues(resource).Inc()
		}
		metrics.RequestsTotal.WithLabelValues(resource, statusLabel(err)).Inc()
		logger.Error("request failed", "error", err)
		return nil, err
	}

	metrics.RequestsTotal.WithLabelValues(resource, "ok").Inc()
	if cacheable {
		c.cacheSet(ctx, url, body)
	}
	return body, nil
}

// attempt performs one HTTP round trip bounded by the request timeout.
func (c *Client) attempt(ctx context.Context, req *request, url, requestID string) ([]byte, error) {
	actx, cancel := context.WithTimeout(ctx, req.timeout)
	defer cancel()

	var reqBody io.Reader
	if req.body != nil {
		reqBody = bytes.NewReader(req.body)
	}
	httpReq, err := http.NewRequestWithContext(actx, req.method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-Version", c.cfg.APIVersion)
	httpReq.Header.Set("X-Request-ID", requestID)
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("X-API-Key", c.cfg.APIKey)
	}
	for k, v := range req.header {
		httpReq.Header[k] = v
	}

	start := time.Now()
	body, status, err := c.roundTrip(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(actx.Err(), context.DeadlineExceeded) {
			err = timeoutError(err)
		} else {
			err = networkError(err)
		}
		c.monitor.RecordFailure(err)
		return nil, err
	}

	if status < 200 || status > 299 {
		apiErr := responseError(status, body)
		c.monitor.RecordFailure(apiErr)
		return nil, apiErr
	}
	c.monitor.RecordSuccess(time.Since(start))

	if !json.Valid(body) {
		return nil, schema.Invalid("", "", "JSON body", "malformed JSON")
	}
	return body, nil
}

func (c *Client) roundTrip(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

func (c *Client) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	body, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache lookup failed", "backend", c.cache.Name(), "error", err)
		metrics.CacheLookupsTotal.WithLabelValues(c.cache.Name(), "error").Inc()
		return nil, false
	}
	if !ok {
		metrics.CacheLookupsTotal.WithLabelValues(c.cache.Name(), "miss").Inc()
		return nil, false
	}
	metrics.CacheLookupsTotal.WithLabelValues(c.cache.Name(), "hit").Inc()
	return body, true
}

func (c *Client) cacheSet(ctx context.Context, key string, body []byte) {
	if err := c.cache.Set(ctx, key, body, c.cacheTTL); err != nil {
		c.logger.Warn("cache store failed", "backend", c.cache.Name(), "error", err)
	}
}

// resourceOf returns the first path segment, used as a low-cardinality label.
func resourceOf(endpoint string) string {
	endpoint = strings.TrimPrefix(endpoint, "/")
	if i := strings.IndexAny(endpoint, "/?"); i >= 0 {
		endpoint = endpoint[:i]
	}
	if endpoint == "" {
		return "root"
	}
	return endpoint
}

func outcomeOf(err error) string {
	switch {
	case IsTimeout(err):
		return "timeout"
	case schema.IsValidationError(err):
		return "invalid"
	case StatusOf(err) == http.StatusTooManyRequests:
		return "throttled"
	case StatusOf(err) >= 500:
		return "server_error"
	case StatusOf(err) > 0:
		return "client_error"
	default:
		return "network_error"
	}
}

func statusLabel(err error) string {
	if schema.IsValidationError(err) {
		return "invalid"
	}
	if s := StatusOf(err); s > 0 {
		return strconv.Itoa(s)
	}
	return "error"
}
