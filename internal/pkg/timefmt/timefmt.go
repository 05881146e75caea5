// Package timefmt implements the canonical timestamp encoding used across
// the feed: "YYYY-MM-DD HH:MM:SS", UTC, second resolution, zero-padded.
// The format is load-bearing: lexicographic comparison of two encoded
// values is identical to chronological comparison, which lets every
// window/threshold filter be pushed to the storage layer as a plain
// string-range condition without parsing rows.
package timefmt

import (
	"errors"
	"fmt"
	"time"
)

const (
	// Layout is the canonical timestamp layout in time.Format reference form.
	Layout = "2006-01-02 15:04:05"

	// DayLayout is the calendar-day form used for bucket keys.
	DayLayout = "2006-01-02"
)

// ErrMalformedTimestamp is returned by Parse when a value does not match
// the fixed pattern or encodes an impossible date/time.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// Format encodes an instant as a canonical timestamp string. The instant
// is converted to UTC and truncated to second resolution by the layout.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// FormatDay encodes the calendar day of an instant (UTC).
func FormatDay(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// Parse decodes a canonical timestamp string. Unlike a bare time.Parse it
// rejects values that are not exactly fixed-width zero-padded ASCII, since
// any deviation would break the lexicographic ordering guarantee.
func Parse(s string) (time.Time, error) {
	if !wellFormed(s) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}
	return t, nil
}

// DayStart returns midnight UTC of the instant's calendar day.
func DayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// wellFormed checks the exact shape "dddd-dd-dd dd:dd:dd". time.Parse alone
// is too lenient: it accepts unpadded fields, which would sort wrongly.
func wellFormed(s string) bool {
	if len(s) != 19 {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch i {
		case 4, 7:
			if s[i] != '-' {
				return false
			}
		case 10:
			if s[i] != ' ' {
				return false
			}
		case 13, 16:
			if s[i] != ':' {
				return false
			}
		default:
			if s[i] < '0' || s[i] > '9' {
				return false
			}
		}
	}
	return true
}
