package app

import (
	"net/url"
	"testing"
)

func queryOf(t *testing.T, raw string) url.Values {
	t.Helper()

	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return parsed.Query()
}

func TestNormalizeDBURL(t *testing.T) {
	t.Run("adds application name and binary flag", func(t *testing.T) {
		got := queryOf(t, normalizeDBURL("postgres://coach:pw@localhost:5432/touchline?sslmode=disable", true))
		if got.Get("application_name") != dbApplicationName {
			t.Fatalf("expected application_name %q, got %q", dbApplicationName, got.Get("application_name"))
		}
		if got.Get("disable_prepared_binary_result") != "yes" {
			t.Fatalf("expected binary flag, got %v", got)
		}
		if got.Get("sslmode") != "disable" {
			t.Fatalf("expected sslmode kept, got %v", got)
		}
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		in := "postgres://coach:pw@localhost:5432/touchline?application_name=psql&disable_prepared_binary_result=no"
		if got := normalizeDBURL(in, true); got != in {
			t.Fatalf("expected url unchanged, got %q", got)
		}
	})

	t.Run("binary flag off", func(t *testing.T) {
		got := queryOf(t, normalizeDBURL("postgres://coach:pw@localhost:5432/touchline", false))
		if got.Has("disable_prepared_binary_result") {
			t.Fatalf("expected no binary flag, got %v", got)
		}
		if got.Get("application_name") != dbApplicationName {
			t.Fatalf("expected application_name, got %v", got)
		}
	})

	t.Run("key value dsn untouched", func(t *testing.T) {
		in := "host=localhost user=coach dbname=touchline sslmode=disable"
		if got := normalizeDBURL(in, true); got != in {
			t.Fatalf("expected dsn unchanged, got %q", got)
		}
	})
}

func TestDBNameFromURL(t *testing.T) {
	tests := map[string]string{
		"postgres://coach:pw@localhost:5432/touchline?sslmode=disable": "touchline",
		"host=localhost user=coach dbname='touchline' sslmode=disable": "touchline",
		"postgres://coach:pw@localhost:5432":                           "",
		"":                                                             "",
	}

	for in, want := range tests {
		if got := dbNameFromURL(in); got != want {
			t.Fatalf("dbNameFromURL(%q) = %q, want %q", in, got, want)
		}
	}
}
