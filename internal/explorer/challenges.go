package explorer

import (
	"context"

	"github.com/vietddude/tigscan/internal/core/domain"
	"github.com/vietddude/tigscan/internal/schema"
)

// ListChallenges returns a window of the challenge list. The API returns
// every challenge at once, so paging happens client-side.
func (s *Service) ListChallenges(ctx context.Context, q domain.ListQuery) (domain.Page[domain.Challenge], error) {
	return fetchWindow[domain.Challenge](ctx, s, "/challenges", schema.Challenge, q)
}

func (s *Service) Challenges(ctx context.Context, page, count int) domain.Page[domain.Challenge] {
	p, err := s.ListChallenges(ctx, domain.ListQuery{Page: page, Count: count})
	return degradePage(s, "challenges", p, err)
}

func (s *Service) GetChallenge(ctx context.Context, id string) (*domain.Challenge, error) {
	return fetchOne[domain.Challenge](ctx, s, path("/challenges/%s", id), schema.Challenge)
}

func (s *Service) FindChallenge(ctx context.Context, id string) *domain.Challenge {
	c, err := s.GetChallenge(ctx, id)
	return degradeOne(s, "challenge", id, c, err)
}

func (s *Service) GetChallengeState(ctx context.Context, id string) (*domain.ChallengeState, error) {
	return fetchOne[domain.ChallengeState](ctx, s, path("/challenges/%s/state", id), schema.ChallengeState)
}

// ListChallengeBlockDataByBlock returns the frontiers of every challenge at a block.
func (s *Service) ListChallengeBlockDataByBlock(ctx context.Context, blockID string) (domain.Page[domain.ChallengeBlockData], error) {
	raw, err := s.client.Get(ctx, path("/challenges/block-data/%s", blockID))
	if err != nil {
		return domain.Page[domain.ChallengeBlockData]{}, err
	}
	return decodePage[domain.ChallengeBlockData](TupleEnvelope, schema.ChallengeBlockData, raw)
}

func (s *Service) GetChallengeBlockData(ctx context.Context, challengeID, blockID string) (*domain.ChallengeBlockData, error) {
	return fetchOne[domain.ChallengeBlockData](ctx, s,
		path("/challenges/%s/block-data/%s", challengeID, blockID), schema.ChallengeBlockData)
}
