package pager

import (
	"context"
	"log/slog"
	"sync"
)

// Loader is anything that can load its next page.
type Loader interface {
	LoadMore(ctx context.Context) error
}

// Sentinel turns visibility events of the end of a list into LoadMore
// calls. Each true value on the visibility channel triggers a load; the
// loader itself drops triggers that arrive while a fetch is in flight.
type Sentinel struct {
	loader  Loader
	onError func(error)
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// NewSentinel creates a sentinel for loader. onError may be nil.
func NewSentinel(loader Loader, onError func(error)) *Sentinel {
	return &Sentinel{
		loader:  loader,
		onError: onError,
		logger:  slog.Default(),
	}
}

// Run consumes visibility events until the channel is closed or ctx is
// done, then waits for loads it started.
func (s *Sentinel) Run(ctx context.Context, visible <-chan bool) error {
	defer s.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case v, ok := <-visible:
			if !ok {
				return nil
			}
			if !v {
				continue
			}
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				if err := s.loader.LoadMore(ctx); err != nil {
					s.logger.Debug("sentinel load failed", "error", err)
					if s.onError != nil {
						s.onError(err)
					}
				}
			}()
		}
	}
}
