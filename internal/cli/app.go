package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/vietddude/tigscan/internal/core/config"
	"github.com/vietddude/tigscan/internal/explorer"
	"github.com/vietddude/tigscan/internal/health"
	"github.com/vietddude/tigscan/internal/infra/api"
	"github.com/vietddude/tigscan/internal/infra/cache"
	redisclient "github.com/vietddude/tigscan/internal/infra/redis"
)

// application is the composition root shared by all commands.
type application struct {
	cfg     *config.AppConfig
	client  *api.Client
	svc     *explorer.Service
	backend string
	closers []func()
}

func newApplication(cfg *config.AppConfig) (*application, error) {
	a := &application{cfg: cfg, backend: "none"}

	opts := []api.Option{api.WithLogger(slog.Default())}
	c, err := a.newCache()
	if err != nil {
		return nil, err
	}
	if c != nil {
		a.backend = c.Name()
		opts = append(opts, api.WithCache(c, cfg.Cache.TTL))
	}

	a.client = api.NewClient(cfg.ClientConfig(), opts...)
	a.svc = explorer.New(a.client, explorer.WithLogger(slog.Default()))
	return a, nil
}

func (a *application) newCache() (api.Cache, error) {
	switch a.cfg.Cache.Backend {
	case "none":
		return nil, nil
	case "redis":
		rc, err := redisclient.NewClient(a.cfg.Redis)
		if err == nil {
			a.closers = append(a.closers, func() { _ = rc.Close() })
			return rc, nil
		}
		slog.Warn("Redis cache unavailable, using memory cache", "error", err)
	}

	m, err := cache.NewMemory(a.cfg.Cache.Size)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (a *application) startHealth(port int) {
	srv := health.NewServer(health.NewMonitor(a.client.Monitor(), a.svc), port)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Health server failed", "error", err)
		}
	}()
	slog.Info("Health server started", "port", port)

	a.closers = append(a.closers, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			slog.Error("Error stopping health server", "error", err)
		}
	})
}

// pageSize returns the --count flag or the configured default.
func (a *application) pageSize() int {
	if pageSize > 0 {
		return pageSize
	}
	return a.cfg.Pagination.PageSize
}

func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
