package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vietddude/tigscan/internal/infra/api"
)

var _ api.Cache = (*Client)(nil)

func TestNewClient_InvalidURL(t *testing.T) {
	if _, err := NewClient(Config{URL: "not-a-url"}); err == nil {
		t.Fatal("expected error for invalid redis URL")
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		prefix string
		url    string
		want   string
	}{
		{"", "http://x/api/blocks?page=0", "tigscan:response:http://x/api/blocks?page=0"},
		{"test:", "/stats", "test:/stats"},
	}

	for _, tt := range tests {
		c := newClient(redis.NewClient(&redis.Options{Addr: "localhost:0"}), tt.prefix)
		if got := c.key(tt.url); got != tt.want {
			t.Errorf("key(%q) = %q, want %q", tt.url, got, tt.want)
		}
		_ = c.Close()
	}
}

func TestGet_Unreachable(t *testing.T) {
	c := newClient(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	}), "")
	defer c.Close()

	_, ok, err := c.Get(context.Background(), "/stats")
	if err == nil {
		t.Fatal("expected error from unreachable redis")
	}
	if ok {
		t.Fatal("unreachable redis must not report a hit")
	}
}
