package utils

import (
	"fmt"
	"time"
)

// Valid range for a user's stored UTC offset, minutes east of UTC
// (UTC-12:00 through UTC+14:00).
const (
	MinUTCOffsetMinutes = -720
	MaxUTCOffsetMinutes = 840
)

// NormalizeDayStart maps an instant to the UTC moment of the user's local
// midnight for that instant's local calendar date. The result is the lookup
// key for day documents. A nil offset means the user's timezone is unknown
// and the UTC calendar date is used; an offset of 0 behaves the same way.
func NormalizeDayStart(t time.Time, offsetMinutes *int) time.Time {
	t = t.UTC()
	if offsetMinutes == nil || *offsetMinutes == 0 {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	off := time.Duration(*offsetMinutes) * time.Minute
	local := t.Add(off)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.Add(-off)
}

// ParseFlexibleDate accepts an RFC3339 instant or a date-only YYYY-MM-DD
// string. A date-only string is the start of that calendar date.
func ParseFlexibleDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
