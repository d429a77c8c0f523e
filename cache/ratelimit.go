package cache

import (
	"context"
	"time"

	"github.com/fwojciec/devdocs"
	"golang.org/x/time/rate"
)

var _ devdocs.RateLimiter = (*Limiter)(nil)

// Limiter spaces requests at least interval apart using a token bucket
// with a burst of 1. The first request never waits.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a Limiter. A non-positive interval disables limiting.
func NewLimiter(interval time.Duration) *Limiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Limiter{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the next request may be sent.
// Returns an error if the context is canceled before the wait completes.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
