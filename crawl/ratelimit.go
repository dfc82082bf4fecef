package crawl

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultRequestDelay is the fixed pause between consecutive requests to
// the source site. The pipeline is deliberately sequential; this bounds the
// request rate on top of that.
const DefaultRequestDelay = 500 * time.Millisecond

// Limiter enforces a fixed delay between consecutive requests using a
// token bucket with burst 1.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a Limiter with the given inter-request delay.
// A non-positive delay falls back to DefaultRequestDelay.
func NewLimiter(delay time.Duration) *Limiter {
	if delay <= 0 {
		delay = DefaultRequestDelay
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Every(delay), 1),
	}
}

// Wait blocks until the delay since the previous request has elapsed.
// Returns an error only when the context is canceled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
