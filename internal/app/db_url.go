package app

import (
	"net/url"
	"strings"
)

const dbApplicationName = "touchline-api"

// normalizeDBURL fills in the connection parameters the API expects without
// overriding anything set in DB_URL. Key/value DSNs are returned as is.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	changed := setQueryDefault(query, "application_name", dbApplicationName)
	if disablePreparedBinaryResult {
		changed = setQueryDefault(query, "disable_prepared_binary_result", "yes") || changed
	}
	if !changed {
		return raw
	}

	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func setQueryDefault(query url.Values, key, value string) bool {
	if query.Has(key) {
		return false
	}
	query.Set(key, value)
	return true
}

// dbNameFromURL reports the database name for logs and span attributes. It
// understands both URL and key/value DSNs.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}

	for _, token := range strings.Fields(trimmed) {
		if name, ok := strings.CutPrefix(token, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}

	return ""
}
