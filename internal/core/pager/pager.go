// Package pager accumulates pages of a paginated query into one growing
// list, the way an infinite-scroll view consumes an API.
package pager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vietddude/tigscan/internal/core/domain"
	"github.com/vietddude/tigscan/internal/infra/metrics"
)

var (
	// ErrTotalChanged is returned in strict mode when a page reports a
	// different total than the first page of the same query.
	ErrTotalChanged = errors.New("total changed between pages")

	// ErrPageOverflow is returned when a page holds more items than the page size.
	ErrPageOverflow = errors.New("page larger than page size")
)

// QueryKey identifies a query. Changing it resets the pager.
type QueryKey string

// QueryFunc fetches one 0-based page.
type QueryFunc[T any] func(ctx context.Context, page int) (domain.Page[T], error)

// State is a snapshot of a pager.
type State[T any] struct {
	Key                QueryKey
	Phase              Phase
	Items              []T
	Total              int
	Pages              int
	HasNextPage        bool
	IsLoading          bool
	IsFetching         bool
	IsFetchingNextPage bool
	IsError            bool
	Err                error
}

type options struct {
	strictTotal   bool
	onStateChange func(Transition)
	logger        *slog.Logger
}

// Option configures a Pager.
type Option func(*options)

// WithStrictTotal rejects pages whose total differs from the first page.
// By default the most recent total wins and a warning is logged.
func WithStrictTotal() Option {
	return func(o *options) {
		o.strictTotal = true
	}
}

// WithStateChange registers a callback for phase transitions. It runs
// outside the pager lock.
func WithStateChange(fn func(Transition)) Option {
	return func(o *options) {
		o.onStateChange = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Pager owns the accumulated pages of one query. At most one page fetch
// runs at a time; the fetch itself runs without holding the lock.
type Pager[T any] struct {
	mu       sync.Mutex
	key      QueryKey
	fn       QueryFunc[T]
	pageSize int
	opts     options

	phase Phase
	pages []domain.Page[T]
	err   error
	gen   uint64
}

// New creates an idle pager. Nothing is fetched until LoadMore.
func New[T any](key QueryKey, fn QueryFunc[T], pageSize int, opts ...Option) *Pager[T] {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	return &Pager[T]{
		key:      key,
		fn:       fn,
		pageSize: pageSize,
		opts:     o,
		phase:    PhaseIdle,
	}
}

// PageSize returns the number of items requested per page.
func (p *Pager[T]) PageSize() int { return p.pageSize }

// LoadMore fetches the next page: page 0 when idle, otherwise the page
// after the last loaded one if the total says there is one. It returns nil
// without fetching when a fetch is already in flight or no page remains.
// A failed fetch keeps the loaded pages and is not retried.
func (p *Pager[T]) LoadMore(ctx context.Context) error {
	_, err := p.loadMore(ctx)
	return err
}

func (p *Pager[T]) loadMore(ctx context.Context) (bool, error) {
	p.mu.Lock()
	var (
		page int
		t    Transition
	)
	switch p.phase {
	case PhaseIdle:
		page = 0
		t = p.setPhase(PhaseLoadingFirst, "load first page")
	case PhaseHasPages:
		if !p.hasNextPage() {
			p.mu.Unlock()
			return false, nil
		}
		page = len(p.pages)
		t = p.setPhase(PhaseFetchingNext, fmt.Sprintf("load page %d", page))
	default:
		p.mu.Unlock()
		return false, nil
	}
	gen, key, fn := p.gen, p.key, p.fn
	p.mu.Unlock()
	p.notify(t)

	p.opts.logger.Debug("fetching page", "query", key, "page", page)
	result, err := fn(ctx, page)

	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		p.opts.logger.Debug("discarding page of stale query", "query", key, "page", page)
		return true, nil
	}
	if err == nil {
		err = p.checkPage(page, result)
	}
	if err != nil {
		p.err = err
		back := PhaseHasPages
		if page == 0 {
			back = PhaseIdle
		}
		t = p.setPhase(back, "fetch failed")
		p.mu.Unlock()
		p.notify(t)
		p.opts.logger.Warn("page fetch failed", "query", key, "page", page, "error", err)
		return true, err
	}

	if result.Data == nil {
		result.Data = []T{}
	}
	p.pages = append(p.pages, result)
	p.err = nil
	items := p.itemCount()
	t = p.setPhase(PhaseHasPages, fmt.Sprintf("page %d loaded", page))
	p.mu.Unlock()
	p.notify(t)

	metrics.PagesLoaded.WithLabelValues(string(key)).Inc()
	metrics.PagerItems.WithLabelValues(string(key)).Set(float64(items))
	return true, nil
}

// checkPage validates a fetched page against the pager invariants.
func (p *Pager[T]) checkPage(page int, result domain.Page[T]) error {
	if len(result.Data) > p.pageSize {
		return fmt.Errorf("%w: page %d has %d items, page size is %d", ErrPageOverflow, page, len(result.Data), p.pageSize)
	}
	if page == 0 || len(p.pages) == 0 {
		return nil
	}
	first := p.pages[0].Total
	if result.Total == first {
		return nil
	}
	if p.opts.strictTotal {
		return fmt.Errorf("%w: page 0 reported %d, page %d reported %d", ErrTotalChanged, first, page, result.Total)
	}
	p.opts.logger.Warn("total changed between pages", "query", p.key, "first", first, "page", page, "total", result.Total)
	return nil
}

// Drain loads pages until none remain, ctx is done or a fetch fails.
func (p *Pager[T]) Drain(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fetched, err := p.loadMore(ctx)
		if err != nil {
			return err
		}
		if fetched {
			continue
		}

		s := p.State()
		if s.Phase == PhaseHasPages && !s.HasNextPage {
			return nil
		}
		// Another caller has a fetch in flight.
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// SetQuery switches the pager to another query. A different key discards
// all pages and the next LoadMore starts again at page 0. Fetches still in
// flight for the old key are discarded when they complete.
func (p *Pager[T]) SetQuery(key QueryKey, fn QueryFunc[T]) {
	p.mu.Lock()
	if key == p.key {
		p.mu.Unlock()
		return
	}
	old := p.key
	t := p.reset(key, fn)
	p.mu.Unlock()

	metrics.PagerItems.WithLabelValues(string(old)).Set(0)
	p.notify(t)
}

// Reset discards all pages of the current query.
func (p *Pager[T]) Reset() {
	p.mu.Lock()
	key := p.key
	t := p.reset(key, p.fn)
	p.mu.Unlock()

	metrics.PagerItems.WithLabelValues(string(key)).Set(0)
	p.notify(t)
}

func (p *Pager[T]) reset(key QueryKey, fn QueryFunc[T]) Transition {
	p.gen++
	p.key = key
	p.fn = fn
	p.pages = nil
	p.err = nil
	if p.phase == PhaseIdle {
		return Transition{}
	}
	return p.setPhase(PhaseIdle, "query reset")
}

// State returns a snapshot of the pager. Items are flattened in page order
// and Total comes from the first page.
func (p *Pager[T]) State() State[T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	items := make([]T, 0, p.itemCount())
	for _, pg := range p.pages {
		items = append(items, pg.Data...)
	}

	var total int
	if len(p.pages) > 0 {
		total = p.pages[0].Total
	}

	return State[T]{
		Key:                p.key,
		Phase:              p.phase,
		Items:              items,
		Total:              total,
		Pages:              len(p.pages),
		HasNextPage:        p.hasNextPage(),
		IsLoading:          p.phase == PhaseLoadingFirst,
		IsFetching:         p.phase == PhaseLoadingFirst || p.phase == PhaseFetchingNext,
		IsFetchingNextPage: p.phase == PhaseFetchingNext,
		IsError:            p.err != nil,
		Err:                p.err,
	}
}

// hasNextPage uses the total of the most recent page.
func (p *Pager[T]) hasNextPage() bool {
	if len(p.pages) == 0 {
		return false
	}
	total := p.pages[len(p.pages)-1].Total
	return len(p.pages) < domain.TotalPages(total, p.pageSize)
}

func (p *Pager[T]) itemCount() int {
	n := 0
	for _, pg := range p.pages {
		n += len(pg.Data)
	}
	return n
}

func (p *Pager[T]) setPhase(to Phase, reason string) Transition {
	t := NewTransition(p.key, p.phase, to, reason)
	if !t.IsValid() {
		p.opts.logger.Error("pager state machine violated", "error", ErrInvalidTransition, "from", t.From, "to", t.To)
	}
	p.phase = to
	return t
}

func (p *Pager[T]) notify(t Transition) {
	if t.From == "" || p.opts.onStateChange == nil {
		return
	}
	p.opts.onStateChange(t)
}
