package resilience

import (
	"testing"
	"time"
)

func TestNormalizeCircuitBreakerConfig_FillsCreditDefaults(t *testing.T) {
	got := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{Enabled: true})
	want := DefaultCircuitBreakerConfig()
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	custom := CircuitBreakerConfig{Enabled: true, FailureThreshold: 8, OpenTimeout: time.Minute, HalfOpenMaxReq: 2}
	if got := NormalizeCircuitBreakerConfig(custom); got != custom {
		t.Fatalf("expected explicit values kept, got %+v", got)
	}
}

func TestCircuitBreakerConfig_Validate(t *testing.T) {
	if err := DefaultCircuitBreakerConfig().Validate(); err != nil {
		t.Fatalf("default config: %v", err)
	}
	if err := (CircuitBreakerConfig{}).Validate(); err != nil {
		t.Fatalf("zero config falls back to defaults: %v", err)
	}

	bad := []CircuitBreakerConfig{
		{FailureThreshold: -1},
		{OpenTimeout: -time.Second},
		{HalfOpenMaxReq: -2},
	}
	for _, cfg := range bad {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected error for %+v", cfg)
		}
	}
}
