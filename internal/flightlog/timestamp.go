package flightlog

import (
	"strings"
	"time"
)

// isoLayouts are the combined date-time forms tried first, with any "T"
// separator normalised to a space.
var isoLayouts = []string{
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04",
	"2006-01-02",
}

// explicitLayouts are tried in order after the ISO forms
var explicitLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006",
}

// ParseTimestamp parses a flight log timestamp. Unparseable or empty input
// yields ok == false rather than an error so the row can still be used.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	iso := strings.Replace(s, "T", " ", 1)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t, true
		}
	}

	for _, layout := range explicitLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
