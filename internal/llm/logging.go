package llm

import (
	"context"
	"errors"
	"time"
)

// CallRecorder receives one record per provider call. Implementations are
// fire-and-forget: a recorder must never return an error or panic in a
// way that aborts generation.
type CallRecorder interface {
	RecordCall(model string, promptTokens, completionTokens int, duration time.Duration, callErr error)
}

// LoggingProvider records every call, including failed ones, through a
// CallRecorder.
type LoggingProvider struct {
	inner    Provider
	recorder CallRecorder
}

// WithLogging wraps a Provider with call recording.
func WithLogging(p Provider, rec CallRecorder) Provider {
	return &LoggingProvider{inner: p, recorder: rec}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	elapsed := time.Since(start)

	model := l.inner.ModelID()
	var prompt, completion int
	if resp != nil {
		model = resp.Model
		prompt = resp.Usage.PromptTokens
		completion = resp.Usage.CompletionTokens
	} else if inv := (*ErrInvalidResponse)(nil); errors.As(err, &inv) {
		// Schema-invalid replies still consumed tokens.
		prompt = inv.Usage.PromptTokens
		completion = inv.Usage.CompletionTokens
	}
	l.recorder.RecordCall(model, prompt, completion, elapsed, err)

	return resp, err
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }
