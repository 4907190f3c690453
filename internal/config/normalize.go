package config

import "strings"

// NormalizeAPIKey cleans up a pasted Hardcover API key. Users copy keys
// out of the site's settings page in several shapes: with an
// "Authorization:" header prefix, with a "Bearer " scheme, or wrapped in
// quotes. Normalization is idempotent so an already-clean key passes
// through unchanged.
func NormalizeAPIKey(key string) string {
	key = strings.TrimSpace(key)
	if rest, ok := cutPrefixFold(key, "authorization:"); ok {
		key = strings.TrimSpace(rest)
	}
	if rest, ok := cutPrefixFold(key, "bearer "); ok {
		key = strings.TrimSpace(rest)
	}
	key = strings.Trim(key, `"'`)
	return strings.TrimSpace(key)
}

// NormalizeUsername trims whitespace and a leading "@".
func NormalizeUsername(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "@")
	return strings.TrimSpace(name)
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}
