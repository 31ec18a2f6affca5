package api

import (
	"sync"
	"time"
)

// Status represents the observed health of the upstream API.
type Status int

const (
	StatusUnknown     Status = iota // No request seen yet
	StatusHealthy                   // API answers normally
	StatusDegraded                  // API is slow or failing often
	StatusThrottled                 // API is rate limiting
	StatusUnreachable               // Recent attempts could not reach the API
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusThrottled:
		return "throttled"
	case StatusUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// MonitorStats holds monitoring statistics for the API.
type MonitorStats struct {
	Status              Status
	AverageLatency      time.Duration
	Requests            int
	Failures            int
	ThrottleCount       int
	ServerErrorCount    int
	TimeoutCount        int
	ConsecutiveFailures int
	RequestsLastHour    int
	LastSuccessAt       time.Time
	LastFailureAt       time.Time
}

// Monitor tracks attempt outcomes of a Client.
type Monitor struct {
	mu sync.RWMutex

	recentLatencies  []time.Duration
	maxLatencyWindow int

	requests            int
	failures            int
	status429Count      int
	status5xxCount      int
	timeoutCount        int
	consecutiveFailures int
	lastThrottleTime    time.Time
	lastSuccessAt       time.Time
	lastFailureAt       time.Time

	requestTimestamps []time.Time
	windowDuration    time.Duration

	slowResponseThreshold time.Duration
	throttleCooldown      time.Duration
	unreachableAfter      int
	degradedThreshold     float64

	now func() time.Time
}

// NewMonitor creates a monitor with default thresholds.
func NewMonitor() *Monitor {
	return &Monitor{
		recentLatencies:       make([]time.Duration, 0, 100),
		maxLatencyWindow:      100,
		windowDuration:        time.Hour,
		slowResponseThreshold: 3 * time.Second,
		throttleCooldown:      time.Minute,
		unreachableAfter:      3,
		degradedThreshold:     0.3,
		now:                   time.Now,
	}
}

// RecordSuccess records a 2xx attempt and its latency.
func (m *Monitor) RecordSuccess(latency time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.track(now)
	m.consecutiveFailures = 0
	m.lastSuccessAt = now

	m.recentLatencies = append(m.recentLatencies, latency)
	if len(m.recentLatencies) > m.maxLatencyWindow {
		m.recentLatencies = m.recentLatencies[1:]
	}
}

// RecordFailure records a failed attempt.
func (m *Monitor) RecordFailure(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.track(now)
	m.failures++
	m.lastFailureAt = now

	status := StatusOf(err)
	switch {
	case IsTimeout(err):
		m.timeoutCount++
		m.consecutiveFailures++
	case status == 429:
		m.status429Count++
		m.lastThrottleTime = now
	case status >= 500:
		m.status5xxCount++
		m.consecutiveFailures++
	case status == 0:
		m.consecutiveFailures++
	}
}

func (m *Monitor) track(now time.Time) {
	m.requests++
	m.requestTimestamps = append(m.requestTimestamps, now)

	cutoff := now.Add(-m.windowDuration)
	i := 0
	for i < len(m.requestTimestamps) && !m.requestTimestamps[i].After(cutoff) {
		i++
	}
	m.requestTimestamps = m.requestTimestamps[i:]
}

// Status returns the current status of the API.
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status()
}

func (m *Monitor) status() Status {
	if m.requests == 0 {
		return StatusUnknown
	}
	if m.consecutiveFailures >= m.unreachableAfter {
		return StatusUnreachable
	}
	if !m.lastThrottleTime.IsZero() && m.now().Sub(m.lastThrottleTime) < m.throttleCooldown {
		return StatusThrottled
	}
	if len(m.recentLatencies) >= 5 && m.averageLatency() > m.slowResponseThreshold {
		return StatusDegraded
	}
	if m.requests >= 5 && float64(m.failures)/float64(m.requests) > m.degradedThreshold {
		return StatusDegraded
	}
	return StatusHealthy
}

func (m *Monitor) averageLatency() time.Duration {
	if len(m.recentLatencies) == 0 {
		return 0
	}
	var total time.Duration
	for _, lat := range m.recentLatencies {
		total += lat
	}
	return total / time.Duration(len(m.recentLatencies))
}

// AverageLatency returns the average latency of recent successful attempts.
func (m *Monitor) AverageLatency() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.averageLatency()
}

// Stats returns current monitoring statistics.
func (m *Monitor) Stats() MonitorStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return MonitorStats{
		Status:              m.status(),
		AverageLatency:      m.averageLatency(),
		Requests:            m.requests,
		Failures:            m.failures,
		ThrottleCount:       m.status429Count,
		ServerErrorCount:    m.status5xxCount,
		TimeoutCount:        m.timeoutCount,
		ConsecutiveFailures: m.consecutiveFailures,
		RequestsLastHour:    len(m.requestTimestamps),
		LastSuccessAt:       m.lastSuccessAt,
		LastFailureAt:       m.lastFailureAt,
	}
}
