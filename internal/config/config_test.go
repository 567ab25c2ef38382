package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/touchline/internal/platform/logging"
	"github.com/riskibarqy/touchline/internal/platform/resilience"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("unexpected StorageDriver: %s", cfg.StorageDriver)
	}
	if cfg.LiveTickInterval != time.Second {
		t.Fatalf("unexpected LiveTickInterval: %s", cfg.LiveTickInterval)
	}
	if cfg.LiveCountdownSeconds != 60 {
		t.Fatalf("unexpected LiveCountdownSeconds: %d", cfg.LiveCountdownSeconds)
	}
	if cfg.LiveCountdownExpiry != ExpiryStay {
		t.Fatalf("unexpected LiveCountdownExpiry: %s", cfg.LiveCountdownExpiry)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %v", cfg.LogLevel)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != time.Minute {
		t.Fatalf("unexpected cache config: enabled=%v ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if got := cfg.CreditCircuitBreaker(); got != resilience.DefaultCircuitBreakerConfig() {
		t.Fatalf("unexpected credit breaker defaults: %+v", got)
	}
}

func TestLoad_LiveSessionSettings(t *testing.T) {
	t.Setenv("APP_ENV", EnvStage)
	t.Setenv("LIVE_TICK_INTERVAL", "250ms")
	t.Setenv("LIVE_COUNTDOWN_SECONDS", "30")
	t.Setenv("LIVE_COUNTDOWN_EXPIRY", "AUTO_APPLY")
	t.Setenv("LIVE_WORKER_POOL_SIZE", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LiveTickInterval != 250*time.Millisecond {
		t.Fatalf("unexpected LiveTickInterval: %s", cfg.LiveTickInterval)
	}
	if cfg.LiveCountdownSeconds != 30 || cfg.LiveWorkerPoolSize != 4 {
		t.Fatalf("unexpected live config: %+v", cfg)
	}
	if cfg.LiveCountdownExpiry != ExpiryAutoApply {
		t.Fatalf("unexpected LiveCountdownExpiry: %s", cfg.LiveCountdownExpiry)
	}
}

func TestLoad_Rejections(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown storage driver":      {"STORAGE_DRIVER": "sqlite"},
		"unknown expiry policy":       {"LIVE_COUNTDOWN_EXPIRY": "later"},
		"non-positive tick":           {"LIVE_TICK_INTERVAL": "0s"},
		"zero worker pool":            {"LIVE_WORKER_POOL_SIZE": "0"},
		"bad bool":                    {"CACHE_ENABLED": "maybe"},
		"bad log level":               {"APP_LOG_LEVEL": "chatty"},
		"uptrace without dsn":         {"UPTRACE_ENABLED": "true", "UPTRACE_DSN": "", "OTEL_EXPORTER_OTLP_HEADERS": ""},
		"pyroscope without server":    {"PYROSCOPE_ENABLED": "true", "PYROSCOPE_SERVER_ADDRESS": ""},
		"non-numeric countdown value": {"LIVE_COUNTDOWN_SECONDS": "sixty"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}
