package mock

import (
	"context"

	"github.com/fwojciec/devdocs"
)

var _ devdocs.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is a mock implementation of devdocs.RateLimiter.
type RateLimiter struct {
	WaitFn func(ctx context.Context) error
}

func (l *RateLimiter) Wait(ctx context.Context) error {
	return l.WaitFn(ctx)
}
