package explorer

import (
	"context"

	"github.com/vietddude/tigscan/internal/core/domain"
	"github.com/vietddude/tigscan/internal/schema"
)

// GetStats returns the network summary shown on the dashboard.
func (s *Service) GetStats(ctx context.Context) (*domain.NetworkStats, error) {
	return fetchOne[domain.NetworkStats](ctx, s, "/stats", schema.NetworkStats)
}
