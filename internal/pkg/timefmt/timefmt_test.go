package timefmt

import (
	"errors"
	"sort"
	"testing"
	"time"
)

func TestFormatParseRoundTrip(t *testing.T) {
	in := time.Date(2025, 9, 1, 12, 30, 45, 0, time.UTC)
	s := Format(in)
	if s != "2025-09-01 12:30:45" {
		t.Fatalf("unexpected encoding: %q", s)
	}

	out, err := Parse(s)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !out.Equal(in) {
		t.Errorf("round trip mismatch: got %v, want %v", out, in)
	}
}

func TestFormatConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	in := time.Date(2025, 9, 1, 14, 0, 0, 0, loc)
	if got := Format(in); got != "2025-09-01 12:00:00" {
		t.Errorf("expected UTC conversion, got %q", got)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"2025-09-01",                  // date only
		"2025-9-01 12:00:00",          // unpadded month
		"2025-09-01T12:00:00",         // wrong separator
		"2025-09-01 12:00:00.000",     // fractional seconds
		"2025-13-01 00:00:00",         // impossible month
		"2025-02-30 00:00:00",         // impossible day
		"2025-09-01 25:00:00",         // impossible hour
		"not-a-timestamp-at-all!",     // garbage
		"2025-09-01  12:00:00",        // double space
	}
	for _, c := range cases {
		t.Run(c, func(t *testing.T) {
			if _, err := Parse(c); !errors.Is(err, ErrMalformedTimestamp) {
				t.Errorf("expected ErrMalformedTimestamp for %q, got %v", c, err)
			}
		})
	}
}

func TestLexicographicOrderMatchesChronological(t *testing.T) {
	instants := []time.Time{
		time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 9, 1, 12, 30, 45, 0, time.UTC),
		time.Date(2025, 10, 1, 1, 2, 3, 0, time.UTC),
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	encoded := make([]string, len(instants))
	for i, in := range instants {
		encoded[i] = Format(in)
	}
	if !sort.StringsAreSorted(encoded) {
		t.Fatalf("encoded timestamps do not sort chronologically: %v", encoded)
	}
}

func TestDayStart(t *testing.T) {
	in := time.Date(2025, 9, 14, 23, 59, 59, 0, time.UTC)
	want := time.Date(2025, 9, 14, 0, 0, 0, 0, time.UTC)
	if got := DayStart(in); !got.Equal(want) {
		t.Errorf("DayStart = %v, want %v", got, want)
	}
}
