package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vietddude/tigscan/internal/core/domain"
	"github.com/vietddude/tigscan/internal/schema"
)

func newTestClient(url string, cfg Config, opts ...Option) *Client {
	cfg.BaseURL = url
	return NewClient(cfg, opts...)
}

type retryRecorder struct {
	mu       sync.Mutex
	attempts []Attempt
}

func (r *retryRecorder) hook(a Attempt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, a)
}

func (r *retryRecorder) delays() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]time.Duration, len(r.attempts))
	for i, a := range r.attempts {
		out[i] = a.Delay
	}
	return out
}

func TestClient_RetriesWithExponentialBackoff(t *testing.T) {
	tests := []struct {
		name       string
		retries    int
		wantCalls  int32
		wantDelays []time.Duration
	}{
		{"single attempt", 1, 1, []time.Duration{}},
		{"default attempts", 3, 3, []time.Duration{time.Millisecond, 2 * time.Millisecond}},
		{"four attempts", 4, 4, []time.Duration{time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"message":"maintenance","code":"DOWN"}`))
			}))
			defer server.Close()

			rec := &retryRecorder{}
			c := newTestClient(server.URL, Config{Retries: tt.retries, RetryDelay: time.Millisecond}, WithRetryHook(rec.hook))

			_, err := c.Get(context.Background(), "/blocks")
			if err == nil {
				t.Fatal("expected error")
			}
			if got := calls.Load(); got != tt.wantCalls {
				t.Errorf("expected %d calls, got %d", tt.wantCalls, got)
			}

			delays := rec.delays()
			if len(delays) != len(tt.wantDelays) {
				t.Fatalf("expected %d retries, got %d", len(tt.wantDelays), len(delays))
			}
			for i := range delays {
				if delays[i] != tt.wantDelays[i] {
					t.Errorf("retry %d: expected delay %v, got %v", i, tt.wantDelays[i], delays[i])
				}
			}

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if apiErr.Status != http.StatusServiceUnavailable || apiErr.Code != "DOWN" || apiErr.Message != "maintenance" {
				t.Errorf("unexpected error fields: %+v", apiErr)
			}
		})
	}
}

func TestClient_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Benchmark not found"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, Config{Retries: 3, RetryDelay: time.Millisecond})

	_, err := c.Get(context.Background(), "/benchmarks/bench1")
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 call, got %d", got)
	}

	var apiErr *Error
	errors.As(err, &apiErr)
	if apiErr.Message != "Benchmark not found" {
		t.Errorf("expected server message, got %q", apiErr.Message)
	}
}

func TestClient_RateLimitThenSuccess(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, Config{Retries: 3, RetryDelay: time.Millisecond})

	body, err := c.Get(context.Background(), "/stats")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("unexpected body %s", body)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 calls, got %d", got)
	}
	if s := c.Monitor().Stats(); s.ThrottleCount != 1 || s.Requests != 2 {
		t.Errorf("unexpected monitor stats: %+v", s)
	}
}

func TestClient_Timeout(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	c := newTestClient(server.URL, Config{Timeout: 20 * time.Millisecond, Retries: 2, RetryDelay: time.Millisecond})

	_, err := c.Get(context.Background(), "/blocks")
	if !IsTimeout(err) {
		t.Fatalf("expected timeout, got %v", err)
	}
	if StatusOf(err) != http.StatusRequestTimeout {
		t.Errorf("expected status 408, got %d", StatusOf(err))
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 calls, got %d", got)
	}
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	rec := &retryRecorder{}
	c := newTestClient(url, Config{Retries: 3, RetryDelay: time.Millisecond}, WithRetryHook(rec.hook))

	_, err := c.Get(context.Background(), "/blocks")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != http.StatusInternalServerError || apiErr.Code != CodeNetwork {
		t.Errorf("unexpected error: %+v", apiErr)
	}
	if len(rec.delays()) != 2 {
		t.Errorf("expected 2 retries, got %d", len(rec.delays()))
	}
	if s := c.Monitor().Status(); s != StatusUnreachable {
		t.Errorf("expected unreachable, got %v", s)
	}
}

func TestClient_HeadersAndParams(t *testing.T) {
	var (
		mu         sync.Mutex
		requestIDs []string
		calls      int
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		requestIDs = append(requestIDs, r.Header.Get("X-Request-ID"))
		mu.Unlock()

		if r.URL.Path != "/api/blocks" {
			t.Errorf("expected path /api/blocks, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("page"); got != "0" {
			t.Errorf("expected page=0, got %q", got)
		}
		if got := r.URL.Query().Get("count"); got != "25" {
			t.Errorf("expected count=25, got %q", got)
		}
		if got := r.URL.Query().Get("ascending"); got != "false" {
			t.Errorf("expected ascending=false, got %q", got)
		}
		if got := r.Header.Get("X-API-Key"); got != "secret" {
			t.Errorf("expected api key, got %q", got)
		}
		if got := r.Header.Get("X-API-Version"); got != "v1" {
			t.Errorf("expected default api version, got %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected json content type, got %q", got)
		}

		if n == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[[], 0]`))
	}))
	defer server.Close()

	c := newTestClient(server.URL+"/api/", Config{APIKey: "secret", Retries: 3, RetryDelay: time.Millisecond})

	q := domain.ListQuery{Page: 0, Count: 25, Ascending: domain.Asc(false)}
	if _, err := c.Get(context.Background(), "/blocks", WithQuery(q)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(requestIDs) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(requestIDs))
	}
	if requestIDs[0] == "" || requestIDs[0] != requestIDs[1] {
		t.Errorf("expected a stable request id across retries, got %v", requestIDs)
	}
}

func TestClient_QueryOmitsUnsetAscending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("ascending") {
			t.Errorf("unexpected ascending param in %s", r.URL.RawQuery)
		}
		if got := r.URL.Query().Get("n"); got != "10" {
			t.Errorf("expected n=10, got %q", got)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, Config{})
	_, err := c.Get(context.Background(), "/blocks", WithQuery(domain.ListQuery{Count: 5}), WithParams(map[string]any{"n": 10}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_InvalidJSONIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, Config{Retries: 3, RetryDelay: time.Millisecond})

	_, err := c.Get(context.Background(), "/blocks")
	if !schema.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 call, got %d", got)
	}
}

func TestClient_ErrorBodyFallback(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"not json", http.StatusBadRequest, `bad things`, "An error occurred"},
		{"no message", http.StatusBadRequest, `{}`, "HTTP error! status: 400"},
		{"message", http.StatusForbidden, `{"message":"nope","details":{"k":"v"}}`, "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := newTestClient(server.URL, Config{Retries: 1})
			_, err := c.Get(context.Background(), "/x")

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if apiErr.Status != tt.status || apiErr.Message != tt.message {
				t.Errorf("unexpected error: %+v", apiErr)
			}
		})
	}
}

func TestClient_ParentCancelStopsRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := newTestClient(server.URL, Config{Retries: 5, RetryDelay: time.Minute},
		WithRetryHook(func(Attempt) { cancel() }))

	start := time.Now()
	_, err := c.Get(ctx, "/blocks")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("cancel did not interrupt the backoff wait")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 call, got %d", got)
	}
}

type mapCache struct {
	mu    sync.Mutex
	items map[string][]byte
	ttls  map[string]time.Duration
}

func newMapCache() *mapCache {
	return &mapCache{items: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *mapCache) Name() string { return "map" }

func (m *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *mapCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	m.ttls[key] = ttl
	return nil
}

func TestClient_Cache(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"total_blocks":1}`))
	}))
	defer server.Close()

	cache := newMapCache()
	c := newTestClient(server.URL, Config{}, WithCache(cache, 0))

	for i := 0; i < 3; i++ {
		if _, err := c.Get(context.Background(), "/stats"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 network call, got %d", got)
	}
	if ttl := cache.ttls[server.URL+"/stats"]; ttl != DefaultCacheTTL {
		t.Errorf("expected default ttl, got %v", ttl)
	}

	if _, err := c.Get(context.Background(), "/stats", NoCache()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("expected NoCache to hit the network, got %d calls", got)
	}
}

func TestClient_PerCallOverrides(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	rec := &retryRecorder{}
	c := newTestClient(server.URL, Config{Retries: 3, RetryDelay: time.Second}, WithRetryHook(rec.hook))

	_, err := c.Get(context.Background(), "/blocks", WithRetries(2), WithRetryDelay(3*time.Millisecond))
	if err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 calls, got %d", got)
	}
	if d := rec.delays(); len(d) != 1 || d[0] != 3*time.Millisecond {
		t.Errorf("unexpected delays %v", d)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		expect ErrorAction
	}{
		{&Error{Status: 429}, ActionRetry},
		{&Error{Status: 500}, ActionRetry},
		{&Error{Status: 503}, ActionRetry},
		{timeoutError(errors.New("deadline")), ActionRetry},
		{networkError(errors.New("connection refused")), ActionRetry},
		{errors.New("unexpected"), ActionRetry},
		{&Error{Status: 400}, ActionFatal},
		{&Error{Status: 404}, ActionFatal},
		{&Error{Status: 408}, ActionFatal},
		{schema.Invalid("block", "height", "integer", "missing"), ActionFatal},
		{context.Canceled, ActionFatal},
		{nil, ActionFatal},
	}

	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.expect {
			t.Errorf("Classify(%v) = %v, want %v", tt.err, got, tt.expect)
		}
	}
}

func TestResourceOf(t *testing.T) {
	tests := map[string]string{
		"/blocks":                    "blocks",
		"/blocks/abc/data":           "blocks",
		"/players/top-balances?n=10": "players",
		"/stats":                     "stats",
		"":                           "root",
	}
	for in, want := range tests {
		if got := resourceOf(in); got != want {
			t.Errorf("resourceOf(%q) = %q, want %q", in, got, want)
		}
	}
}
