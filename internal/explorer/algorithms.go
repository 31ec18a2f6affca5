package explorer

import (
	"context"
	"regexp"

	"github.com/vietddude/tigscan/internal/core/domain"
	"github.com/vietddude/tigscan/internal/infra/api"
	"github.com/vietddude/tigscan/internal/schema"
)

var blockIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{32}$`)

// IsValidBlockID reports whether id has the 32 hex digit block id format.
func IsValidBlockID(id string) bool {
	return blockIDPattern.MatchString(id)
}

func (s *Service) ListAlgorithms(ctx context.Context, q domain.ListQuery) (domain.Page[domain.Algorithm], error) {
	return fetchPage[domain.Algorithm](ctx, s, "/algorithms", schema.Algorithm, q)
}

func (s *Service) Algorithms(ctx context.Context, page, count int) domain.Page[domain.Algorithm] {
	p, err := s.ListAlgorithms(ctx, domain.ListQuery{Page: page, Count: count})
	return degradePage(s, "algorithms", p, err)
}

func (s *Service) GetAlgorithm(ctx context.Context, id string) (*domain.Algorithm, error) {
	return fetchOne[domain.Algorithm](ctx, s, path("/algorithms/%s", id), schema.Algorithm)
}

func (s *Service) FindAlgorithm(ctx context.Context, id string) *domain.Algorithm {
	a, err := s.GetAlgorithm(ctx, id)
	return degradeOne(s, "algorithm", id, a, err)
}

func (s *Service) GetAlgorithmState(ctx context.Context, id string) (*domain.AlgorithmState, error) {
	return fetchOne[domain.AlgorithmState](ctx, s, path("/algorithms/%s/state", id), schema.AlgorithmState)
}

// GetAlgorithmData returns the submitted source code of an algorithm.
func (s *Service) GetAlgorithmData(ctx context.Context, id string) (*domain.AlgorithmData, error) {
	return fetchOne[domain.AlgorithmData](ctx, s, path("/algorithms/%s/data", id), schema.AlgorithmData)
}

func (s *Service) GetAlgorithmBlockData(ctx context.Context, algorithmID, blockID string) (*domain.AlgorithmBlockData, error) {
	return fetchOne[domain.AlgorithmBlockData](ctx, s,
		path("/algorithms/%s/block-data/%s", algorithmID, blockID), schema.AlgorithmBlockData)
}

// ListAlgorithmBlockDataByBlock returns the block data of every algorithm at a block.
func (s *Service) ListAlgorithmBlockDataByBlock(ctx context.Context, blockID string) (domain.Page[domain.AlgorithmBlockData], error) {
	raw, err := s.client.Get(ctx, path("/algorithms/block-data/%s", blockID))
	if err != nil {
		return domain.Page[domain.AlgorithmBlockData]{}, err
	}
	return decodePage[domain.AlgorithmBlockData](TupleEnvelope, schema.AlgorithmBlockData, raw)
}

// AlgorithmsByBlock returns the algorithms of a block compared with
// comparison ("<=" by default). Malformed block ids and failures yield an
// empty list.
func (s *Service) AlgorithmsByBlock(ctx context.Context, blockID, comparison string) []domain.Algorithm {
	if !IsValidBlockID(blockID) {
		s.logger.Warn("invalid block id format", "block_id", blockID)
		return []domain.Algorithm{}
	}
	if comparison == "" {
		comparison = "<="
	}
	items, err := fetchList[domain.Algorithm](ctx, s, path("/algorithms/by-block/%s", blockID), schema.Algorithm,
		api.WithParam("comparison", comparison))
	if err != nil {
		s.logger.Error("list fetch failed", "resource", "algorithms by block", "block_id", blockID, "error", err)
		return []domain.Algorithm{}
	}
	return items
}

// AlgorithmRoundEarnings returns the round earnings of an algorithm at a block.
func (s *Service) AlgorithmRoundEarnings(ctx context.Context, algorithmID, blockID string) (string, error) {
	raw, err := s.client.Get(ctx, path("/algorithms/%s/round-earnings/%s", algorithmID, blockID))
	if err != nil {
		return "", err
	}
	return decodeField[string](raw, schema.RoundEarnings, "round_earnings")
}
