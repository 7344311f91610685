package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func quotaErr(model string) error {
	return &ErrQuotaExhausted{Model: model, Err: errors.New("daily quota")}
}

func TestRotation_AdvancesOnQuota(t *testing.T) {
	a := NewNamedMockProvider("model-a", MockResponse{Err: quotaErr("model-a")})
	b := NewNamedMockProvider("model-b", MockResponse{Content: json.RawMessage(`{"ok":true}`)})

	var from, to string
	r := WithRotation([]Provider{a, b}, func(f, tt string) { from, to = f, tt })

	req := Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}}
	resp, err := r.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Model != "model-b" {
		t.Errorf("expected model-b to serve, got %s", resp.Model)
	}
	if from != "model-a" || to != "model-b" {
		t.Errorf("rotation callback got (%s, %s)", from, to)
	}

	// The identical request was reissued to the fallback.
	if len(b.Calls) != 1 || b.Calls[0].Messages[0].Content != "hi" {
		t.Errorf("fallback did not receive the identical request: %+v", b.Calls)
	}
	if r.ModelID() != "model-b" {
		t.Errorf("ModelID = %s, want model-b", r.ModelID())
	}
}

func TestRotation_ExhaustedListIsFatal(t *testing.T) {
	a := NewNamedMockProvider("model-a", MockResponse{Err: quotaErr("model-a")})
	b := NewNamedMockProvider("model-b", MockResponse{Err: quotaErr("model-b")})
	r := WithRotation([]Provider{a, b}, nil)

	_, err := r.Generate(context.Background(), Request{})
	var quota *ErrQuotaExhausted
	if !errors.As(err, &quota) {
		t.Fatalf("expected ErrQuotaExhausted, got %v", err)
	}
	if quota.Model != "model-b" {
		t.Errorf("error should name the last model tried, got %s", quota.Model)
	}
}

func TestRotation_RotationIsSticky(t *testing.T) {
	a := NewNamedMockProvider("model-a", MockResponse{Err: quotaErr("model-a")})
	b := NewNamedMockProvider("model-b",
		MockResponse{Content: json.RawMessage(`{}`)},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	r := WithRotation([]Provider{a, b}, nil)

	if _, err := r.Generate(context.Background(), Request{}); err != nil {
		t.Fatal(err)
	}
	// Second request goes straight to model-b; model-a's quota is gone
	// for the rest of the run.
	if _, err := r.Generate(context.Background(), Request{}); err != nil {
		t.Fatal(err)
	}
	if a.CallCount() != 1 {
		t.Errorf("exhausted model was called again: %d calls", a.CallCount())
	}
	if b.CallCount() != 2 {
		t.Errorf("expected 2 calls on fallback, got %d", b.CallCount())
	}
}

func TestRotation_OtherErrorsPropagate(t *testing.T) {
	a := NewNamedMockProvider("model-a", MockResponse{Err: &ErrProviderUnavailable{}})
	b := NewNamedMockProvider("model-b", MockResponse{Content: json.RawMessage(`{}`)})
	r := WithRotation([]Provider{a, b}, nil)

	_, err := r.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable to propagate, got %v", err)
	}
	if b.CallCount() != 0 {
		t.Error("non-quota errors must not rotate")
	}
}
