package explorer

import (
	"context"
	"encoding/json"

	"github.com/vietddude/tigscan/internal/core/domain"
	"github.com/vietddude/tigscan/internal/infra/api"
	"github.com/vietddude/tigscan/internal/schema"
)

func (s *Service) blockOrLatest(ctx context.Context, blockID string) (string, error) {
	if blockID != "" {
		return blockID, nil
	}
	return s.LatestBlockID(ctx)
}

// PlayerBlockDataByBlock returns the standing of every player at a block,
// the newest block when blockID is empty.
func (s *Service) PlayerBlockDataByBlock(ctx context.Context, blockID string) (domain.Page[domain.PlayerBlockData], error) {
	blockID, err := s.blockOrLatest(ctx, blockID)
	if err != nil {
		return domain.Page[domain.PlayerBlockData]{}, err
	}
	raw, err := s.client.Get(ctx, path("/players/block-data/%s", blockID))
	if err != nil {
		return domain.Page[domain.PlayerBlockData]{}, err
	}
	return decodePage[domain.PlayerBlockData](TupleEnvelope, schema.PlayerBlockData, raw)
}

// PlayerBlockDataHistory returns one page of a player's block data.
func (s *Service) PlayerBlockDataHistory(ctx context.Context, playerID string, page, count int) ([]domain.PlayerBlockData, error) {
	q := normalize(domain.ListQuery{Page: page, Count: count})
	return fetchList[domain.PlayerBlockData](ctx, s, path("/players/%s/block-data", playerID), schema.PlayerBlockData,
		api.WithQuery(q))
}

func (s *Service) GetPlayerBlockData(ctx context.Context, playerID, blockID string) (*domain.PlayerBlockData, error) {
	return fetchOne[domain.PlayerBlockData](ctx, s,
		path("/players/%s/block-data/%s", playerID, blockID), schema.PlayerBlockData)
}

// ActivePlayers returns the ids of players active at a block, the newest
// block when blockID is empty.
func (s *Service) ActivePlayers(ctx context.Context, blockID string) (domain.ActivePlayers, error) {
	blockID, err := s.blockOrLatest(ctx, blockID)
	if err != nil {
		return domain.ActivePlayers{}, err
	}
	raw, err := s.client.Get(ctx, path("/players/active/%s", blockID))
	if err != nil {
		return domain.ActivePlayers{}, err
	}
	if err := schema.Validate(schema.ActivePlayers, raw); err != nil {
		return domain.ActivePlayers{}, err
	}

	var parts []json.RawMessage
	var out domain.ActivePlayers
	if err := json.Unmarshal(raw, &parts); err != nil {
		return domain.ActivePlayers{}, schema.Invalid("active players", "", "[ids, total]", err.Error())
	}
	if err := json.Unmarshal(parts[0], &out.PlayerIDs); err != nil {
		return domain.ActivePlayers{}, schema.Invalid("active players", "[0]", "array<string>", err.Error())
	}
	if err := json.Unmarshal(parts[1], &out.Total); err != nil {
		return domain.ActivePlayers{}, schema.Invalid("active players", "[1]", "integer", err.Error())
	}
	return out, nil
}

// PlayerBalance returns a player's balance at a block.
func (s *Service) PlayerBalance(ctx context.Context, playerID, blockID string) (string, error) {
	b, err := fetchOne[domain.PlayerBalance](ctx, s, path("/players/%s/balance/block/%s", playerID, blockID), schema.PlayerBalance)
	if err != nil {
		return "", err
	}
	return b.Balance, nil
}

// PlayerBalanceByEthBlock returns a player's balance at an Ethereum block.
func (s *Service) PlayerBalanceByEthBlock(ctx context.Context, playerID string, ethBlockNum int64) (string, error) {
	b, err := fetchOne[domain.PlayerEthBalance](ctx, s,
		path("/players/%s/balance/eth-block/%d", playerID, ethBlockNum), schema.PlayerEthBalance)
	if err != nil {
		return "", err
	}
	return b.Balance, nil
}

// PlayerRoundEarnings returns a player's earnings for the round of a block.
func (s *Service) PlayerRoundEarnings(ctx context.Context, playerID, blockID string) (string, error) {
	e, err := fetchOne[domain.RoundEarnings](ctx, s,
		path("/players/%s/round-earnings/%s", playerID, blockID), schema.PlayerRoundEarnings)
	if err != nil {
		return "", err
	}
	return e.RoundEarnings, nil
}

// TopBalances returns the n largest balances.
func (s *Service) TopBalances(ctx context.Context, n int) ([]domain.TopBalance, error) {
	if n <= 0 {
		n = 10
	}
	return fetchList[domain.TopBalance](ctx, s, "/players/top-balances", schema.TopBalance, api.WithParam("n", n))
}

// BalanceHistory returns a player's balance series, optionally bounded by
// start and end block numbers.
func (s *Service) BalanceHistory(ctx context.Context, playerID string, startBlock, endBlock *int64) ([]domain.BalancePoint, error) {
	var opts []api.RequestOption
	if startBlock != nil {
		opts = append(opts, api.WithParam("start_block", *startBlock))
	}
	if endBlock != nil {
		opts = append(opts, api.WithParam("end_block", *endBlock))
	}
	return fetchList[domain.BalancePoint](ctx, s, path("/players/%s/balance-history", playerID), schema.BalancePoint, opts...)
}

// BalancesByBlock returns player balances grouped by block over the last n blocks.
func (s *Service) BalancesByBlock(ctx context.Context, n int) ([]domain.BalancePoint, error) {
	if n <= 0 {
		n = 100
	}
	return fetchList[domain.BalancePoint](ctx, s, "/players/balances-by-block", schema.BalancePoint, api.WithParam("n", n))
}

// BalancesOverLastNBlocks returns every player balance sample of the last n blocks.
func (s *Service) BalancesOverLastNBlocks(ctx context.Context, n int) ([]domain.BalancePoint, error) {
	if n <= 0 {
		n = 100
	}
	return fetchList[domain.BalancePoint](ctx, s, "/players/balances-over-last-n-blocks", schema.BalancePoint, api.WithParam("n", n))
}
