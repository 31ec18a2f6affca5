package explorer

import (
	"context"

	"github.com/vietddude/tigscan/internal/core/domain"
	"github.com/vietddude/tigscan/internal/schema"
)

func (s *Service) ListBenchmarks(ctx context.Context, q domain.ListQuery) (domain.Page[domain.Benchmark], error) {
	return fetchPage[domain.Benchmark](ctx, s, "/benchmarks", schema.Benchmark, q)
}

func (s *Service) Benchmarks(ctx context.Context, page, count int) domain.Page[domain.Benchmark] {
	p, err := s.ListBenchmarks(ctx, domain.ListQuery{Page: page, Count: count})
	return degradePage(s, "benchmarks", p, err)
}

func (s *Service) GetBenchmark(ctx context.Context, id string) (*domain.Benchmark, error) {
	return fetchOne[domain.Benchmark](ctx, s, path("/benchmarks/%s", id), schema.Benchmark)
}

func (s *Service) FindBenchmark(ctx context.Context, id string) *domain.Benchmark {
	b, err := s.GetBenchmark(ctx, id)
	return degradeOne(s, "benchmark", id, b, err)
}

func (s *Service) GetBenchmarkState(ctx context.Context, id string) (*domain.BenchmarkState, error) {
	return fetchOne[domain.BenchmarkState](ctx, s, path("/benchmarks/%s/state", id), schema.BenchmarkState)
}

func (s *Service) GetBenchmarkData(ctx context.Context, id string) (*domain.BenchmarkData, error) {
	return fetchOne[domain.BenchmarkData](ctx, s, path("/benchmarks/%s/data", id), schema.BenchmarkData)
}

// BenchmarksByBlock returns the benchmarks confirmed in a block.
func (s *Service) BenchmarksByBlock(ctx context.Context, blockID string) ([]domain.Benchmark, error) {
	return fetchList[domain.Benchmark](ctx, s, path("/benchmarks/by-block/%s", blockID), schema.Benchmark)
}
