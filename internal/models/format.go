package models

import (
	"strings"
	"time"
)

// InvalidDate is shown for timestamps that do not parse.
const InvalidDate = "Invalid Date"

var timestampLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ShortDate renders a timestamp as "Jan 2, 2006", the way lists show it.
func ShortDate(s string) string {
	t, ok := parseTimestamp(s)
	if !ok {
		return InvalidDate
	}
	return t.Format("Jan 2, 2006")
}

// NumericDate renders a timestamp as "1/2/2006".
func NumericDate(s string) string {
	t, ok := parseTimestamp(s)
	if !ok {
		return InvalidDate
	}
	return t.Format("1/2/2006")
}

// Label capitalizes the status for display.
func (s ProposalStatus) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}
