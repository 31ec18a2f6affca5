// Package health reports the health of the explorer API as seen by this process.
package health

import "time"

// SystemStatus represents the overall health state of the system or a component.
type SystemStatus string

const (
	StatusHealthy  SystemStatus = "healthy"
	StatusDegraded SystemStatus = "degraded"
	StatusCritical SystemStatus = "critical"
)

// APIHealth contains client-side metrics for the explorer API.
type APIHealth struct {
	Status              string  `json:"status"`
	Requests            int     `json:"requests"`
	Failures            int     `json:"failures"`
	ErrorRate           float64 `json:"error_rate"`
	AverageLatencyMs    int64   `json:"average_latency_ms"`
	ThrottleCount       int     `json:"throttle_count"`
	TimeoutCount        int     `json:"timeout_count"`
	ConsecutiveFailures int     `json:"consecutive_failures"`
	RequestsLastHour    int     `json:"requests_last_hour"`
}

// HealthReport contains the full system health report.
type HealthReport struct {
	SystemStatus  SystemStatus `json:"system_status"`
	API           APIHealth    `json:"api"`
	LatestBlockID string       `json:"latest_block_id,omitempty"`
	BlockError    string       `json:"block_error,omitempty"`
	CheckedAt     time.Time    `json:"checked_at"`
}
