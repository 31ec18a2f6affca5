package explorer

import (
	"context"

	"github.com/vietddude/tigscan/internal/core/domain"
	"github.com/vietddude/tigscan/internal/schema"
)

// ListProofs returns one page of proofs. The API returns a bare array, so
// Total is the number of items in the page.
func (s *Service) ListProofs(ctx context.Context, q domain.ListQuery) (domain.Page[domain.Proof], error) {
	return fetchPage[domain.Proof](ctx, s, "/proofs", schema.Proof, q)
}

func (s *Service) Proofs(ctx context.Context, page, count int) domain.Page[domain.Proof] {
	p, err := s.ListProofs(ctx, domain.ListQuery{Page: page, Count: count})
	return degradePage(s, "proofs", p, err)
}

// GetProof returns the proof submitted for a benchmark.
func (s *Service) GetProof(ctx context.Context, benchmarkID string) (*domain.Proof, error) {
	return fetchOne[domain.Proof](ctx, s, path("/proofs/%s", benchmarkID), schema.Proof)
}

func (s *Service) FindProof(ctx context.Context, benchmarkID string) *domain.Proof {
	p, err := s.GetProof(ctx, benchmarkID)
	return degradeOne(s, "proof", benchmarkID, p, err)
}

func (s *Service) GetProofState(ctx context.Context, benchmarkID string) (*domain.ProofState, error) {
	return fetchOne[domain.ProofState](ctx, s, path("/proofs/%s/state", benchmarkID), schema.ProofState)
}

func (s *Service) GetProofData(ctx context.Context, benchmarkID string) (*domain.ProofData, error) {
	return fetchOne[domain.ProofData](ctx, s, path("/proofs/%s/data", benchmarkID), schema.ProofData)
}

// ProofsByBlock returns the proofs confirmed in a block.
func (s *Service) ProofsByBlock(ctx context.Context, blockID string) ([]domain.Proof, error) {
	return fetchList[domain.Proof](ctx, s, path("/proofs/by-block/%s", blockID), schema.Proof)
}
