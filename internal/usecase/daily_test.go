package usecase

import (
	"testing"
	"time"

	"github.com/user/fraud-lens/internal/domain"
)

func TestBucketDaily(t *testing.T) {
	// 14-day range ending 2025-09-14.
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	const days = 14

	t.Run("Series Is Contiguous With Zero Days", func(t *testing.T) {
		points := bucketDaily(nil, start, days)
		if len(points) != days {
			t.Fatalf("expected %d entries, got %d", days, len(points))
		}
		for i, p := range points {
			want := start.AddDate(0, 0, i).Format("2006-01-02")
			if p.Date != want {
				t.Errorf("entry %d: date = %q, want %q", i, p.Date, want)
			}
			if p.Total != 0 || p.Flagged != 0 {
				t.Errorf("entry %d: expected zero counts, got %+v", i, p)
			}
		}
	})

	t.Run("Transaction Time Takes Priority Over Label Time", func(t *testing.T) {
		rows := []domain.FeedRow{
			{TxID: 1, TxUTC: "2025-09-03 10:00:00",
				HasLabel: true, LabelFlag: true, LabeledAt: "2025-09-05 10:00:00"},
		}
		points := bucketDaily(rows, start, days)

		if points[2].Total != 1 || points[2].Flagged != 1 {
			t.Errorf("expected unit on 2025-09-03, got %+v", points[2])
		}
		if points[4].Total != 0 {
			t.Errorf("expected nothing on label day 2025-09-05, got %+v", points[4])
		}
	})

	t.Run("Label Day Is Fallback For Pre-Window Transactions", func(t *testing.T) {
		rows := []domain.FeedRow{
			// Occurrence predates the range; labeling activity is recent.
			{TxID: 1, TxUTC: "2025-08-01 00:00:00",
				HasLabel: true, LabelFlag: true, LabeledAt: "2025-09-10 00:00:00"},
		}
		points := bucketDaily(rows, start, days)

		if points[9].Total != 1 || points[9].Flagged != 1 {
			t.Errorf("expected unit on 2025-09-10, got %+v", points[9])
		}
		var total int
		for _, p := range points {
			total += p.Total
		}
		if total != 1 {
			t.Errorf("transaction credited %d times across the series, want 1", total)
		}
	})

	t.Run("Neither Time In Range Excludes The Row", func(t *testing.T) {
		rows := []domain.FeedRow{
			{TxID: 1, TxUTC: "2025-08-01 00:00:00",
				HasLabel: true, LabeledAt: "2025-08-15 00:00:00"},
			{TxID: 2, TxUTC: "2025-07-01 00:00:00"},
		}
		points := bucketDaily(rows, start, days)
		for i, p := range points {
			if p.Total != 0 {
				t.Errorf("entry %d: expected empty bucket, got %+v", i, p)
			}
		}
	})

	t.Run("Malformed Timestamps Degrade Gracefully", func(t *testing.T) {
		rows := []domain.FeedRow{
			{TxID: 1, TxUTC: "not a timestamp"},
			// Malformed own time but a valid in-range label: label fallback.
			{TxID: 2, TxUTC: "also bad", HasLabel: true, LabelFlag: true, LabeledAt: "2025-09-02 00:00:00"},
			{TxID: 3, TxUTC: "2025-09-04 00:00:00"},
		}
		points := bucketDaily(rows, start, days)

		if points[1].Total != 1 || points[1].Flagged != 1 {
			t.Errorf("expected label-bucketed unit on 2025-09-02, got %+v", points[1])
		}
		if points[3].Total != 1 {
			t.Errorf("expected valid row on 2025-09-04, got %+v", points[3])
		}
		var total int
		for _, p := range points {
			total += p.Total
		}
		if total != 2 {
			t.Errorf("expected 2 bucketed rows in total, got %d", total)
		}
	})

	t.Run("Flag Derivation Matches Window Aggregator", func(t *testing.T) {
		rows := []domain.FeedRow{
			{TxID: 1, TxUTC: "2025-09-03 00:00:00", HasScore: true, Predicted: true},
			{TxID: 2, TxUTC: "2025-09-03 00:00:00", HasLabel: true, LabelFlag: true, LabeledAt: "2025-09-03 01:00:00"},
			{TxID: 3, TxUTC: "2025-09-03 00:00:00", HasScore: true, Predicted: false,
				HasLabel: true, LabelFlag: false, LabeledAt: "2025-09-03 01:00:00"},
		}

		points := bucketDaily(rows, start, days)
		kpis := aggregateWindow(rows, "2025-09-01 00:00:00")

		if points[2].Flagged != kpis.FlaggedCount {
			t.Errorf("daily flagged = %d, window flagged = %d; derivations must agree",
				points[2].Flagged, kpis.FlaggedCount)
		}
	})
}
