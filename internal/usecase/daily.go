package usecase

import (
	"time"

	"github.com/user/fraud-lens/internal/domain"
	"github.com/user/fraud-lens/internal/pkg/timefmt"
)

// bucketDaily reconciles the two event-time sources per transaction into a
// single per-day bucket and accumulates totals across a fixed-length
// trailing range. start is midnight UTC of the oldest reported day; the
// result always has exactly days entries in ascending date order with no
// gaps, zero-activity days included.
//
// Bucket assignment is a deliberate tie-break: a transaction's home day is
// its own occurrence day whenever that falls inside the range; the label
// day is only a fallback for transactions whose occurrence predates the
// range but whose labeling activity is recent. Each transaction contributes
// at most one unit to total and at most one to flagged, never two, even
// when both timestamps qualify. Malformed timestamps simply don't qualify;
// one bad row never aborts the batch.
func bucketDaily(rows []domain.FeedRow, start time.Time, days int) []DailyPoint {
	points := make([]DailyPoint, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		day := timefmt.FormatDay(start.AddDate(0, 0, i))
		points[i] = DailyPoint{Date: day}
		index[day] = i
	}

	for _, r := range rows {
		var bucketAt time.Time
		var ok bool

		if txAt, err := timefmt.Parse(r.TxUTC); err == nil && !txAt.Before(start) {
			bucketAt, ok = txAt, true
		} else if r.HasLabel {
			if labelAt, err := timefmt.Parse(r.LabeledAt); err == nil && !labelAt.Before(start) {
				bucketAt, ok = labelAt, true
			}
		}
		if !ok {
			continue
		}

		i, known := index[timefmt.FormatDay(bucketAt)]
		if !known {
			continue
		}
		points[i].Total++
		if r.Flagged() {
			points[i].Flagged++
		}
	}

	return points
}
