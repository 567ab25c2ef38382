package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenMaxReq: 1})

	now := time.Date(2026, 9, 5, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	storeErr := errors.New("store unavailable")
	fail := func() error { return storeErr }
	ok := func() error { return nil }

	if err := b.Do(fail); !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	_ = b.Do(fail)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	called := false
	err := b.Do(func() error { called = true; return nil })
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected short circuit, got err=%v called=%v", err, called)
	}

	now = now.Add(6 * time.Second)
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}
	if err := b.Do(ok); err != nil {
		t.Fatalf("expected half-open trial call to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful trial call, got %s", state)
	}
}

func TestCircuitBreaker_DisabledPassesThrough(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: false, FailureThreshold: 1})
	storeErr := errors.New("boom")

	for i := 0; i < 3; i++ {
		if err := b.Do(func() error { return storeErr }); !errors.Is(err, storeErr) {
			t.Fatalf("expected pass-through error, got %v", err)
		}
	}
}
