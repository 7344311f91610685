package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// TimeoutProvider bounds each call at a fixed deadline. A call that runs
// out of its own deadline surfaces as ErrProviderUnavailable so the
// transport retry treats it like any other transient backend failure;
// cancellation of the caller's context passes through untouched.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps a Provider with a per-call deadline. A non-positive
// duration disables the deadline.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &TimeoutProvider{inner: p, timeout: d}
}

func (t *TimeoutProvider) Generate(parent context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(parent, t.timeout)
	defer cancel()

	resp, err := t.inner.Generate(ctx, req)
	if err != nil && parent.Err() == nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("no reply within %s: %w", t.timeout, err)}
	}
	return resp, err
}

func (t *TimeoutProvider) ModelID() string { return t.inner.ModelID() }
