package llm

import (
	"context"
	"sync"
	"time"
)

// Limiter enforces a minimum interval between provider calls, derived
// from a requests-per-minute budget. The last-call timestamp is the only
// mutable state shared across calls; it is mutex-guarded so the contract
// holds even if callers ever become concurrent.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	now   func() time.Time                             // test hook
	sleep func(ctx context.Context, d time.Duration) error // test hook
}

// NewLimiter builds a limiter for the given requests-per-minute budget.
// rpm <= 0 disables limiting.
func NewLimiter(rpm int) *Limiter {
	var interval time.Duration
	if rpm > 0 {
		interval = time.Minute / time.Duration(rpm)
	}
	return &Limiter{
		interval: interval,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Wait blocks until the minimum inter-call interval has elapsed since the
// previous call, then records the current call. Returns early with the
// context error on cancellation.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.interval <= 0 {
		return nil
	}

	l.mu.Lock()
	now := l.now()
	wait := l.interval - now.Sub(l.last)
	if wait < 0 {
		wait = 0
	}
	// Reserve the slot before sleeping so a future concurrent caller
	// queues behind this one instead of racing it.
	l.last = now.Add(wait)
	l.mu.Unlock()

	if wait == 0 {
		return nil
	}
	return l.sleep(ctx, wait)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RateLimitedProvider applies a Limiter before every call.
type RateLimitedProvider struct {
	inner   Provider
	limiter *Limiter
}

// WithRateLimit wraps a Provider so that every Generate waits on the
// shared limiter first. All providers in a rotation share one limiter;
// the budget belongs to the run, not to a model.
func WithRateLimit(p Provider, l *Limiter) Provider {
	return &RateLimitedProvider{inner: p, limiter: l}
}

func (r *RateLimitedProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.inner.Generate(ctx, req)
}

func (r *RateLimitedProvider) ModelID() string { return r.inner.ModelID() }
