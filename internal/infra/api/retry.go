package api

import (
	"time"

	"github.com/sethvargo/go-retry"
)

// Attempt describes a failed attempt that is about to be retried.
type Attempt struct {
	RequestID   string
	Endpoint    string
	Attempt     int // 1-based number of the attempt that failed
	MaxAttempts int
	Delay       time.Duration
	Err         error
}

// RetryHook observes retries. It runs on the requesting goroutine before
// the backoff wait.
type RetryHook func(Attempt)

// exponential returns delay, 2*delay, 4*delay, ... without jitter or cap.
func exponential(delay time.Duration) retry.Backoff {
	var n uint
	return retry.BackoffFunc(func() (time.Duration, bool) {
		d := delay << n
		n++
		return d, false
	})
}

// backoff allows maxAttempts attempts in total and reports every scheduled
// retry to onRetry.
func backoff(maxAttempts int, delay time.Duration, onRetry func(attempt int, d time.Duration)) retry.Backoff {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	limited := retry.WithMaxRetries(uint64(maxAttempts-1), exponential(delay))

	attempt := 0
	return retry.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		d, stop := limited.Next()
		if !stop && onRetry != nil {
			onRetry(attempt, d)
		}
		return d, stop
	})
}
