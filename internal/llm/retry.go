package llm

import (
	"context"
	"errors"
	"time"
)

// RetryProvider retries transport-level failures: transient backend
// errors and missing-usage replies with a linear backoff, and rate limits
// with the provider-suggested wait when one was extracted. Nothing else
// is retried here; quota belongs to the rotation, invalid responses
// belong to the orchestrator's conversational retry loop, and
// unclassified errors (auth failures, malformed requests) propagate
// immediately.
type RetryProvider struct {
	inner  Provider
	config RetryConfig

	sleep func(ctx context.Context, d time.Duration) error // test hook
}

// WithRetry wraps a Provider with transport retry logic.
func WithRetry(p Provider, cfg RetryConfig) *RetryProvider {
	return &RetryProvider{inner: p, config: cfg, sleep: sleepCtx}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error

	for attempt := 0; attempt < r.config.TransportAttempts; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !transportRetryable(err) {
			return nil, err
		}
		if attempt == r.config.TransportAttempts-1 {
			break
		}
		if err := r.sleep(ctx, r.backoff(attempt, err)); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

func transportRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var rl *ErrRateLimit
	if errors.As(err, &rl) {
		return true
	}
	var unavailable *ErrProviderUnavailable
	if errors.As(err, &unavailable) {
		return true
	}
	var noUsage *ErrMissingUsage
	if errors.As(err, &noUsage) {
		return true
	}
	// Everything else propagates immediately: quota belongs to the
	// rotation, invalid responses to the orchestrator, and unclassified
	// errors (auth failures, malformed requests) are fatal.
	return false
}

// backoff is the wait before the next attempt: the provider-suggested
// delay for rate limits when present, otherwise InitialWait scaled
// linearly by attempt number, capped at MaxWait.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	wait := r.config.InitialWait * time.Duration(attempt+1)
	if r.config.MaxWait > 0 && wait > r.config.MaxWait {
		wait = r.config.MaxWait
	}
	return wait
}
