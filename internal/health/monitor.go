package health

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vietddude/tigscan/internal/infra/api"
)

// CheckInterval bounds how often CheckHealth asks the API for the newest block.
const CheckInterval = 10 * time.Second

var errCheckAbandoned = errors.New("health check abandoned")

// StatsSource exposes client-side API statistics.
type StatsSource interface {
	Stats() api.MonitorStats
}

// BlockSource fetches the newest block id straight from the API.
type BlockSource interface {
	LiveLatestBlockID(ctx context.Context) (string, error)
}

// Monitor aggregates health status from the API client and a live block lookup.
type Monitor struct {
	stats      StatsSource
	blocks     BlockSource
	lastCheck  time.Time
	lastReport *HealthReport
	inflight   chan struct{}
	now        func() time.Time
	mu         sync.Mutex
}

// NewMonitor creates a new health monitor. blocks may be nil.
func NewMonitor(stats StatsSource, blocks BlockSource) *Monitor {
	return &Monitor{
		stats:  stats,
		blocks: blocks,
		now:    time.Now,
	}
}

// CheckHealth returns the current report, refreshing it at most once per
// CheckInterval. While a refresh is running other callers get the previous
// report, or wait for the refresh when there is none yet.
func (m *Monitor) CheckHealth(ctx context.Context) HealthReport {
	m.mu.Lock()
	now := m.now()
	if m.lastReport != nil && (m.inflight != nil || now.Sub(m.lastCheck) < CheckInterval) {
		report := *m.lastReport
		m.mu.Unlock()
		return report
	}
	if done := m.inflight; done != nil {
		m.mu.Unlock()
		return m.await(ctx, done, now)
	}
	done := make(chan struct{})
	m.inflight = done
	m.mu.Unlock()

	report := m.check(ctx, now)

	m.mu.Lock()
	m.lastCheck = now
	m.lastReport = &report
	m.inflight = nil
	m.mu.Unlock()
	close(done)
	return report
}

func (m *Monitor) await(ctx context.Context, done <-chan struct{}, now time.Time) HealthReport {
	select {
	case <-done:
	case <-ctx.Done():
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lastReport != nil {
		return *m.lastReport
	}
	return HealthReport{SystemStatus: StatusDegraded, BlockError: errCheckAbandoned.Error(), CheckedAt: now}
}

func (m *Monitor) check(ctx context.Context, now time.Time) HealthReport {
	report := HealthReport{SystemStatus: StatusHealthy, CheckedAt: now}

	blockFailed := false
	if m.blocks != nil {
		id, err := m.blocks.LiveLatestBlockID(ctx)
		if err != nil {
			blockFailed = true
			report.BlockError = err.Error()
		} else {
			report.LatestBlockID = id
		}
	}

	// Stats are read after the lookup so they include it.
	st := m.stats.Stats()
	report.API = APIHealth{
		Status:              st.Status.String(),
		Requests:            st.Requests,
		Failures:            st.Failures,
		AverageLatencyMs:    st.AverageLatency.Milliseconds(),
		ThrottleCount:       st.ThrottleCount,
		TimeoutCount:        st.TimeoutCount,
		ConsecutiveFailures: st.ConsecutiveFailures,
		RequestsLastHour:    st.RequestsLastHour,
	}
	if st.Requests > 0 {
		report.API.ErrorRate = float64(st.Failures) / float64(st.Requests)
	}

	switch {
	case st.Status == api.StatusUnreachable:
		report.SystemStatus = StatusCritical
	case st.Status == api.StatusDegraded, st.Status == api.StatusThrottled, blockFailed:
		report.SystemStatus = StatusDegraded
	}
	return report
}
