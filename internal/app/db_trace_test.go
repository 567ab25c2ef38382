package app

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFormatDBQueryForTrace(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "collapses whitespace", query: "  SELECT *\n\tFROM players\n  WHERE team_id = $1 ", want: "SELECT * FROM players WHERE team_id = $1"},
		{name: "drops trailing semicolon", query: "DELETE FROM games WHERE id = $1;", want: "DELETE FROM games WHERE id = $1"},
		{name: "empty", query: " \n ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDBQueryForTrace(tt.query); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatDBQueryForTrace_Truncates(t *testing.T) {
	long := "SELECT " + strings.Repeat("x", 600)
	got := formatDBQueryForTrace(long)
	if len(got) != maxTracedQueryLength+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncated query, got length %d", len(got))
	}

	// 'é' is two bytes; the cut must not split it.
	multi := "SELECT '" + strings.Repeat("é", 300) + "'"
	got = formatDBQueryForTrace(multi)
	body := strings.TrimSuffix(got, "...")
	if !strings.HasSuffix(got, "...") || len(body) > maxTracedQueryLength || !utf8.ValidString(body) {
		t.Fatalf("expected rune-safe truncation, got %q", got)
	}
}
