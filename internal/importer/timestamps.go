package importer

import (
	"fmt"
	"strings"
	"time"
)

// Accepted timestamp layouts. The backend emits naive ISO timestamps for
// values it stored without a zone; those are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp or plain date into UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q (expected ISO-8601 or YYYY-MM-DD)", s)
}

func parseOptionalTimestamp(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := ParseTimestamp(*s)
	if err != nil {
		return nil
	}
	return &t
}

// timestampOr parses s, falling back when it is empty.
func timestampOr(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	return ParseTimestamp(s)
}
