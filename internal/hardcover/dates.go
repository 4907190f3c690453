package hardcover

import "time"

// The API returns exactly two date shapes: full ISO-8601 timestamps with
// optional fractional seconds, and bare dates. Each parser tries its known
// formats in order and never guesses a third.

// parseTimestamp parses an ISO-8601 timestamp. Unparsable input yields the
// zero time, which sorts as earliest-possible.
func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// parseDate parses a bare ISO date, falling back to the timestamp formats.
// ok is false when neither stage matches.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t := parseTimestamp(s); !t.IsZero() {
		return t, true
	}
	return time.Time{}, false
}

// utcToday returns today's date in UTC, truncated to midnight.
func utcToday() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// utcDateString formats now as the bare-date string the API's date columns
// expect.
func utcDateString() string {
	return time.Now().UTC().Format("2006-01-02")
}
