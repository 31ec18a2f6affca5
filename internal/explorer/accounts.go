package explorer

import (
	"context"
	"time"

	"github.com/vietddude/tigscan/internal/core/domain"
	"github.com/vietddude/tigscan/internal/schema"
)

// ListAccounts returns a window of the players at the newest block, in
// account form. Paging happens client-side.
func (s *Service) ListAccounts(ctx context.Context, q domain.ListQuery) (domain.Page[domain.Account], error) {
	players, err := s.PlayerBlockDataByBlock(ctx, "")
	if err != nil {
		return domain.Page[domain.Account]{}, err
	}

	addedAt := s.now().UTC().Format(time.RFC3339)
	all := domain.Page[domain.Account]{
		Data:  make([]domain.Account, len(players.Data)),
		Total: players.Total,
	}
	for i, p := range players.Data {
		all.Data[i] = domain.NewAccount(p, addedAt)
	}
	return window(all, normalize(q)), nil
}

func (s *Service) Accounts(ctx context.Context, page, count int) domain.Page[domain.Account] {
	p, err := s.ListAccounts(ctx, domain.ListQuery{Page: page, Count: count})
	return degradePage(s, "accounts", p, err)
}

// GetAccount returns a player's account at the newest block.
func (s *Service) GetAccount(ctx context.Context, playerID string) (*domain.Account, error) {
	blockID, err := s.LatestBlockID(ctx)
	if err != nil {
		return nil, err
	}
	d, err := s.GetPlayerBlockData(ctx, playerID, blockID)
	if err != nil {
		return nil, err
	}
	a := domain.NewAccount(*d, s.now().UTC().Format(time.RFC3339))
	return &a, nil
}

func (s *Service) FindAccount(ctx context.Context, playerID string) *domain.Account {
	a, err := s.GetAccount(ctx, playerID)
	return degradeOne(s, "account", playerID, a, err)
}

// AccountHistory is PlayerBlockDataHistory degraded to an empty list.
func (s *Service) AccountHistory(ctx context.Context, playerID string, page, count int) []domain.PlayerBlockData {
	items, err := s.PlayerBlockDataHistory(ctx, playerID, page, count)
	if err != nil {
		s.logger.Error("list fetch failed", "resource", "account history", "id", playerID, "error", err)
		return []domain.PlayerBlockData{}
	}
	return items
}

// AccountBalance is PlayerBalance degraded to "0".
func (s *Service) AccountBalance(ctx context.Context, playerID, blockID string) string {
	b, err := s.PlayerBalance(ctx, playerID, blockID)
	if err != nil {
		s.logger.Error("detail fetch failed", "resource", "account balance", "id", playerID, "error", err)
		return "0"
	}
	return b
}

// Leaderboard returns the top n accounts.
func (s *Service) Leaderboard(ctx context.Context, n int) (domain.Page[domain.LeaderboardEntry], error) {
	if n <= 0 {
		n = 10
	}
	items, err := fetchList[domain.LeaderboardEntry](ctx, s, path("/accounts/leaderboard/%d", n), schema.LeaderboardEntry)
	if err != nil {
		return domain.Page[domain.LeaderboardEntry]{}, err
	}
	return domain.Page[domain.LeaderboardEntry]{Data: items, Total: len(items)}, nil
}
