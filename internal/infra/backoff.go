package infra

import (
	"time"
)

const (
	// Retry delays for the scrape fallback. The whole flag fetch must stay
	// within a couple of seconds, so the cap is tight.
	baseDelay = 500 * time.Millisecond
	maxDelay  = 5 * time.Second
)

// CalculateBackoff returns the exponential backoff duration for a given
// retry count: baseDelay * 2^retryCount, capped at maxDelay.
// A negative retryCount returns baseDelay.
func CalculateBackoff(retryCount int) time.Duration {
	if retryCount < 0 {
		return baseDelay
	}

	// 2^30 * 500ms is already far past maxDelay; cap early to avoid overflow.
	if retryCount > 30 {
		return maxDelay
	}

	backoff := baseDelay * time.Duration(1<<retryCount)

	if backoff > maxDelay {
		return maxDelay
	}

	return backoff
}
