package app

import (
	"strings"
	"unicode/utf8"
)

const maxTracedQueryLength = 512

// formatDBQueryForTrace puts a query on one line for the db.statement span
// attribute and caps it at maxTracedQueryLength bytes.
func formatDBQueryForTrace(query string) string {
	normalized := strings.TrimSuffix(strings.Join(strings.Fields(query), " "), ";")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	cut := maxTracedQueryLength
	for cut > 0 && !utf8.RuneStart(normalized[cut]) {
		cut--
	}
	return normalized[:cut] + "..."
}
