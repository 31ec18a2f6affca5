// Package explorer exposes typed accessors for every resource of the
// explorer API.
//
// List accessors come in two forms. ListX returns errors and is what a
// pager consumes. X degrades to an empty page and logs the failure, which
// is what a list view wants. Detail accessors likewise come as GetX, which
// surfaces typed errors such as a 404, and FindX, which returns nil.
package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/vietddude/tigscan/internal/core/domain"
	"github.com/vietddude/tigscan/internal/core/pager"
	"github.com/vietddude/tigscan/internal/infra/api"
	"github.com/vietddude/tigscan/internal/schema"
)

// DefaultPageSize is used when a caller asks for a non-positive count.
const DefaultPageSize = 25

// Fetcher performs API requests and returns raw JSON bodies.
type Fetcher interface {
	Get(ctx context.Context, endpoint string, opts ...api.RequestOption) ([]byte, error)
}

// Service groups the resource accessors.
type Service struct {
	client    Fetcher
	envelopes map[string]Envelope
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithEnvelope overrides the list envelope expected from endpoint.
func WithEnvelope(endpoint string, env Envelope) Option {
	return func(s *Service) {
		s.envelopes[endpoint] = env
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithClock sets the clock used for derived timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a Service on top of client.
func New(client Fetcher, opts ...Option) *Service {
	s := &Service{
		client: client,
		envelopes: map[string]Envelope{
			"/blocks":     TupleEnvelope,
			"/algorithms": TupleEnvelope,
			"/benchmarks": TupleEnvelope,
			"/challenges": ArrayEnvelope,
			"/proofs":     ArrayEnvelope,
		},
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) envelope(endpoint string) Envelope {
	if env, ok := s.envelopes[endpoint]; ok {
		return env
	}
	return TupleEnvelope
}

// fetchPage requests one server-paginated page and validates its items.
func fetchPage[T any](ctx context.Context, s *Service, endpoint string, shape schema.Shape, q domain.ListQuery, opts ...api.RequestOption) (domain.Page[T], error) {
	q = normalize(q)
	raw, err := s.client.Get(ctx, endpoint, append([]api.RequestOption{api.WithQuery(q)}, opts...)...)
	if err != nil {
		return domain.Page[T]{}, err
	}

	page, err := decodePage[T](s.envelope(endpoint), shape, raw)
	if err != nil {
		return domain.Page[T]{}, err
	}
	if len(page.Data) > q.Count {
		return domain.Page[T]{}, schema.Invalid(nameOf(shape), "data",
			fmt.Sprintf("at most %d items", q.Count), fmt.Sprintf("%d items", len(page.Data)))
	}
	return page, nil
}

// fetchWindow requests an unpaginated list and returns the window for q.
func fetchWindow[T any](ctx context.Context, s *Service, endpoint string, shape schema.Shape, q domain.ListQuery, opts ...api.RequestOption) (domain.Page[T], error) {
	q = normalize(q)
	raw, err := s.client.Get(ctx, endpoint, opts...)
	if err != nil {
		return domain.Page[T]{}, err
	}
	all, err := decodePage[T](s.envelope(endpoint), shape, raw)
	if err != nil {
		return domain.Page[T]{}, err
	}
	return window(all, q), nil
}

func decodePage[T any](env Envelope, shape schema.Shape, raw []byte) (domain.Page[T], error) {
	items, total, err := env.Unwrap(raw)
	if err != nil {
		return domain.Page[T]{}, err
	}
	data, err := schema.ParseList[T](shape, items)
	if err != nil {
		return domain.Page[T]{}, err
	}
	return domain.Page[T]{Data: data, Total: total}, nil
}

// window slices page q out of a complete list. Total stays the list total.
func window[T any](all domain.Page[T], q domain.ListQuery) domain.Page[T] {
	start := q.Page * q.Count
	if start >= len(all.Data) {
		return domain.Page[T]{Data: []T{}, Total: all.Total}
	}
	end := min(start+q.Count, len(all.Data))
	return domain.Page[T]{Data: all.Data[start:end], Total: all.Total}
}

func fetchOne[T any](ctx context.Context, s *Service, endpoint string, shape schema.Shape, opts ...api.RequestOption) (*T, error) {
	raw, err := s.client.Get(ctx, endpoint, opts...)
	if err != nil {
		return nil, err
	}
	v, err := schema.Parse[T](shape, raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func fetchList[T any](ctx context.Context, s *Service, endpoint string, shape schema.Shape, opts ...api.RequestOption) ([]T, error) {
	raw, err := s.client.Get(ctx, endpoint, opts...)
	if err != nil {
		return nil, err
	}
	return schema.ParseList[T](shape, raw)
}

func degradePage[T any](s *Service, what string, p domain.Page[T], err error) domain.Page[T] {
	if err != nil {
		s.logger.Error("list fetch failed", "resource", what, "error", err)
		return domain.EmptyPage[T]()
	}
	return p
}

func degradeOne[T any](s *Service, what, id string, v *T, err error) *T {
	if err != nil {
		s.logger.Error("detail fetch failed", "resource", what, "id", id, "error", err)
		return nil
	}
	return v
}

func normalize(q domain.ListQuery) domain.ListQuery {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Count <= 0 {
		q.Count = DefaultPageSize
	}
	return q
}

func path(format string, ids ...any) string {
	escaped := make([]any, len(ids))
	for i, id := range ids {
		if s, ok := id.(string); ok {
			escaped[i] = url.PathEscape(s)
		} else {
			escaped[i] = id
		}
	}
	return fmt.Sprintf(format, escaped...)
}

func nameOf(shape schema.Shape) string {
	if o, ok := shape.(*schema.ObjectShape); ok {
		return o.Name()
	}
	return shape.String()
}

// decodeField reads one field of an already validated object.
func decodeField[T any](raw []byte, shape *schema.ObjectShape, field string) (T, error) {
	var zero T
	if err := schema.Validate(shape, raw); err != nil {
		return zero, err
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return zero, schema.Invalid(shape.Name(), "", "object", err.Error())
	}
	var v T
	if err := json.Unmarshal(obj[field], &v); err != nil {
		return zero, schema.Invalid(shape.Name(), field, shape.String(), err.Error())
	}
	return v, nil
}

// QueryFunc adapts a strict list accessor to a pager query.
func QueryFunc[T any](list func(context.Context, domain.ListQuery) (domain.Page[T], error), count int, ascending *bool) pager.QueryFunc[T] {
	return func(ctx context.Context, page int) (domain.Page[T], error) {
		return list(ctx, domain.ListQuery{Page: page, Count: count, Ascending: ascending})
	}
}
