package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/schema"
)

var queryEncoder = schema.NewEncoder()

type request struct {
	method     string
	params     url.Values
	body       []byte
	header     http.Header
	timeout    time.Duration
	retries    int
	retryDelay time.Duration
	noCache    bool
	err        error
}

// RequestOption customizes a single request.
type RequestOption func(*request)

// WithParams appends query parameters. Values are formatted with fmt.
func WithParams(params map[string]any) RequestOption {
	return func(r *request) {
		for k, v := range params {
			r.params.Add(k, fmt.Sprint(v))
		}
	}
}

// WithParam appends a single query parameter.
func WithParam(key string, value any) RequestOption {
	return func(r *request) {
		r.params.Add(key, fmt.Sprint(value))
	}
}

// WithQuery encodes a struct tagged with `schema:"name"` into query parameters.
func WithQuery(v any) RequestOption {
	return func(r *request) {
		dst := map[string][]string{}
		if err := queryEncoder.Encode(v, dst); err != nil {
			r.err = fmt.Errorf("encode query: %w", err)
			return
		}
		for k, vals := range dst {
			for _, val := range vals {
				r.params.Add(k, val)
			}
		}
	}
}

// WithMethod overrides the HTTP method. The default is GET.
func WithMethod(method string) RequestOption {
	return func(r *request) {
		r.method = method
	}
}

// WithBody sends v as a JSON request body.
func WithBody(v any) RequestOption {
	return func(r *request) {
		b, err := json.Marshal(v)
		if err != nil {
			r.err = fmt.Errorf("marshal body: %w", err)
			return
		}
		r.body = b
	}
}

// WithHeader sets an extra request header.
func WithHeader(key, value string) RequestOption {
	return func(r *request) {
		r.header.Set(key, value)
	}
}

// WithTimeout overrides the per-attempt timeout.
func WithTimeout(d time.Duration) RequestOption {
	return func(r *request) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithRetries overrides the total number of attempts.
func WithRetries(n int) RequestOption {
	return func(r *request) {
		if n > 0 {
			r.retries = n
		}
	}
}

// WithRetryDelay overrides the base backoff delay.
func WithRetryDelay(d time.Duration) RequestOption {
	return func(r *request) {
		if d >= 0 {
			r.retryDelay = d
		}
	}
}

// NoCache bypasses the response cache for this request.
func NoCache() RequestOption {
	return func(r *request) {
		r.noCache = true
	}
}
