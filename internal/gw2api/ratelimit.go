package gw2api

import (
	"context"
	"math/rand"
	"time"

	"golang.org/x/time/rate"
)

// Limiter gates admission of outbound requests. Implementations must be
// safe for concurrent use by arbitrarily many callers. The Client takes a
// Limiter by reference so tests can substitute NopLimiter.
type Limiter interface {
	// Wait blocks until a request may be admitted or the context is done.
	Wait(ctx context.Context) error
}

// RateLimiter enforces a global request quota shared by all concurrent
// fetches, with a bounded random jitter delay after each admission so that
// callers becoming eligible at the same instant do not fire in lockstep.
//
// Admission is serialized by the underlying token bucket; execution is not:
// any number of admitted requests may be in flight concurrently.
type RateLimiter struct {
	bucket    *rate.Limiter
	maxJitter time.Duration
}

// NewRateLimiter creates a limiter admitting perMinute requests per minute,
// each followed by a random delay in [0, maxJitter). A zero maxJitter
// disables the jitter.
func NewRateLimiter(perMinute int, maxJitter time.Duration) *RateLimiter {
	return &RateLimiter{
		// Burst matches the quota so a cold start can fan out a full
		// minute's budget at once, as the remote allows.
		bucket:    rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute),
		maxJitter: maxJitter,
	}
}

// Wait blocks until the quota admits a request, then sleeps the jitter
// delay. Both phases honor context cancellation.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if err := rl.bucket.Wait(ctx); err != nil {
		return err
	}
	if rl.maxJitter <= 0 {
		return nil
	}

	jitter := time.Duration(rand.Float64() * float64(rl.maxJitter))
	timer := time.NewTimer(jitter)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NopLimiter admits every request immediately. Used in tests.
type NopLimiter struct{}

// Wait returns immediately with the context's error, if any.
func (NopLimiter) Wait(ctx context.Context) error {
	return ctx.Err()
}
