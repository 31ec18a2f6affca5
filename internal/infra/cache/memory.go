// Package cache provides in-process response caches for the API client.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the number of responses kept when no size is configured.
const DefaultSize = 512

type entry struct {
	body      []byte
	expiresAt time.Time
}

// Memory is a size-bounded LRU cache with per-entry expiry.
type Memory struct {
	mu  sync.Mutex
	lru *lru.Cache[string, entry]
	now func() time.Time
}

// NewMemory creates a Memory cache holding at most size responses.
func NewMemory(size int) (*Memory, error) {
	if size <= 0 {
		size = DefaultSize
	}
	c, err := lru.New[string, entry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}
	return &Memory{lru: c, now: time.Now}, nil
}

func (m *Memory) Name() string { return "memory" }

// Get returns the body stored under key if it has not expired.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		m.lru.Remove(key)
		return nil, false, nil
	}
	return e.body, true, nil
}

// Set stores body under key for ttl. A non-positive ttl never expires.
func (m *Memory) Set(_ context.Context, key string, body []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{body: append([]byte(nil), body...)}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.lru.Add(key, e)
	return nil
}

// Len returns the number of stored responses, expired ones included.
func (m *Memory) Len() int {
	return m.lru.Len()
}

// Purge drops every stored response.
func (m *Memory) Purge() {
	m.lru.Purge()
}
