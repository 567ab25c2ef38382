package resilience

import (
	"fmt"
	"time"
)

type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

// DefaultCircuitBreakerConfig suits season crediting: a finish writes one row
// per rostered player, so a few straight failures mean the store is down.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 3,
		OpenTimeout:      30 * time.Second,
		HalfOpenMaxReq:   1,
	}
}

// Validate rejects negative settings. Zero values fall back to the defaults.
func (c CircuitBreakerConfig) Validate() error {
	if c.FailureThreshold < 0 {
		return fmt.Errorf("circuit breaker failure threshold must not be negative, got %d", c.FailureThreshold)
	}
	if c.OpenTimeout < 0 {
		return fmt.Errorf("circuit breaker open timeout must not be negative, got %s", c.OpenTimeout)
	}
	if c.HalfOpenMaxReq < 0 {
		return fmt.Errorf("circuit breaker half-open requests must not be negative, got %d", c.HalfOpenMaxReq)
	}
	return nil
}

func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return cfg
}
