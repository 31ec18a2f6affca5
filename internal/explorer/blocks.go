package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/vietddude/tigscan/internal/core/domain"
	"github.com/vietddude/tigscan/internal/infra/api"
	"github.com/vietddude/tigscan/internal/schema"
)

// ErrNoBlocks is returned when the chain has no block yet.
var ErrNoBlocks = errors.New("no blocks found")

// ListBlocks returns one page of blocks, newest first unless q.Ascending is set.
func (s *Service) ListBlocks(ctx context.Context, q domain.ListQuery) (domain.Page[domain.Block], error) {
	return fetchPage[domain.Block](ctx, s, "/blocks", schema.Block, q)
}

// Blocks is ListBlocks degraded to an empty page on failure.
func (s *Service) Blocks(ctx context.Context, page, count int) domain.Page[domain.Block] {
	p, err := s.ListBlocks(ctx, domain.ListQuery{Page: page, Count: count})
	return degradePage(s, "blocks", p, err)
}

func (s *Service) GetBlock(ctx context.Context, id string) (*domain.Block, error) {
	return fetchOne[domain.Block](ctx, s, path("/blocks/%s", id), schema.Block)
}

func (s *Service) FindBlock(ctx context.Context, id string) *domain.Block {
	b, err := s.GetBlock(ctx, id)
	return degradeOne(s, "block", id, b, err)
}

// GetBlockByIdx returns the block at a height.
func (s *Service) GetBlockByIdx(ctx context.Context, idx int64) (*domain.Block, error) {
	return fetchOne[domain.Block](ctx, s, path("/blocks/by-idx/%d", idx), schema.Block)
}

// GetBlockData returns the mempool and active id lists of a block.
// Missing lists are returned empty.
func (s *Service) GetBlockData(ctx context.Context, id string) (*domain.BlockData, error) {
	d, err := fetchOne[domain.BlockData](ctx, s, path("/blocks/%s/data", id), schema.BlockData)
	if err != nil {
		return nil, err
	}
	d.Normalize()
	return d, nil
}

func (s *Service) FindBlockData(ctx context.Context, id string) *domain.BlockData {
	d, err := s.GetBlockData(ctx, id)
	return degradeOne(s, "block data", id, d, err)
}

// GetEthBlockNum returns the Ethereum block number anchored to a block.
func (s *Service) GetEthBlockNum(ctx context.Context, id string) (int64, error) {
	raw, err := s.client.Get(ctx, path("/blocks/%s/eth-block-num", id))
	if err != nil {
		return 0, err
	}
	return decodeField[int64](raw, schema.EthBlockNum, "eth_block_num")
}

// GetBlockIDByBenchmark returns the id of the block a benchmark was confirmed in.
func (s *Service) GetBlockIDByBenchmark(ctx context.Context, benchmarkID string) (string, error) {
	raw, err := s.client.Get(ctx, path("/blocks/by-benchmark/%s", benchmarkID))
	if err != nil {
		return "", err
	}
	return decodeField[string](raw, schema.BlockRef, "block_id")
}

// AverageBlockTime returns the average block time in seconds. The API
// reports it either as a number or as a numeric string.
func (s *Service) AverageBlockTime(ctx context.Context) (float64, error) {
	raw, err := s.client.Get(ctx, "/block-avg-time")
	if err != nil {
		return 0, err
	}
	v, err := schema.Decode(raw)
	if err != nil {
		return 0, err
	}
	switch t := v.(type) {
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, schema.Invalid("average block time", "", "numeric string", strconv.Quote(t))
		}
		return f, nil
	case json.Number:
		return t.Float64()
	}
	return 0, schema.Invalid("average block time", "", "number|string", string(schema.KindOf(v)))
}

// LatestBlockID returns the id of the newest block.
func (s *Service) LatestBlockID(ctx context.Context) (string, error) {
	return s.latestBlockID(ctx)
}

// LiveLatestBlockID is LatestBlockID answered by the API itself, never by
// the response cache.
func (s *Service) LiveLatestBlockID(ctx context.Context) (string, error) {
	return s.latestBlockID(ctx, api.NoCache())
}

func (s *Service) latestBlockID(ctx context.Context, opts ...api.RequestOption) (string, error) {
	q := domain.ListQuery{Count: 1, Ascending: domain.Asc(false)}
	p, err := fetchPage[domain.Block](ctx, s, "/blocks", schema.Block, q, opts...)
	if err != nil {
		return "", err
	}
	if len(p.Data) == 0 {
		return "", ErrNoBlocks
	}
	return p.Data[0].ID, nil
}

// LatestConfig returns the protocol configuration of the newest block.
func (s *Service) LatestConfig(ctx context.Context) (*domain.BlockConfig, error) {
	raw, err := s.client.Get(ctx, "/blocks/latest/config", api.NoCache())
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(schema.Record(schema.Unknown()), raw); err != nil {
		return nil, err
	}
	var cfg domain.BlockConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, schema.Invalid("block config", "", "block config", err.Error())
	}
	return &cfg, nil
}
