package llm

import (
	"context"
	"errors"
	"sync"
)

// RotationProvider works around daily quota caps by holding an ordered
// list of per-model providers. On quota exhaustion it advances to the next
// model and reissues the identical request; this does not count against
// any retry budget. When the list runs out, ErrQuotaExhausted propagates
// and is fatal for the run. The rotation index only moves forward: a model
// whose quota is gone stays gone for the rest of the run.
type RotationProvider struct {
	mu        sync.Mutex
	providers []Provider
	index     int
	onRotate  func(from, to string)
}

// WithRotation builds a rotation over the given providers, in order.
// onRotate, if non-nil, is notified on each model switch.
func WithRotation(providers []Provider, onRotate func(from, to string)) *RotationProvider {
	return &RotationProvider{providers: providers, onRotate: onRotate}
}

func (r *RotationProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	for {
		current := r.current()
		resp, err := current.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		var quota *ErrQuotaExhausted
		if !errors.As(err, &quota) {
			return nil, err
		}
		if !r.advance(current) {
			return nil, err
		}
	}
}

// ModelID reports the model currently selected by the rotation.
func (r *RotationProvider) ModelID() string {
	return r.current().ModelID()
}

func (r *RotationProvider) current() Provider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.providers[r.index]
}

// advance moves past the exhausted provider. Returns false when the
// rotation has no models left. The from argument guards against a double
// advance when two callers observe the same exhaustion.
func (r *RotationProvider) advance(from Provider) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.providers[r.index] != from {
		return true // someone else already rotated
	}
	if r.index+1 >= len(r.providers) {
		return false
	}
	prev := r.providers[r.index].ModelID()
	r.index++
	if r.onRotate != nil {
		r.onRotate(prev, r.providers[r.index].ModelID())
	}
	return true
}
