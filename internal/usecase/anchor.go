package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/user/fraud-lens/internal/pkg/timefmt"
)

// resolveAnchor derives the reference "now" for the whole dataset: the
// latest transaction instant, overridden by the latest label instant when
// that is strictly later. Labels are backfilled on settled transactions,
// so a burst of fresh labeling must move the anchor even when no new
// transactions arrived; anchoring on wall-clock time instead would make
// historical/replayed datasets invisible to every trailing window.
//
// The anchor is recomputed on every request, never cached: the feed grows
// between calls and each scan is a single index-backed max per source.
func (s *dashboardService) resolveAnchor(ctx context.Context) (time.Time, error) {
	maxTx, err := s.feed.MaxTransactionTime(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("resolve anchor: %w", err)
	}

	anchor, perr := timefmt.Parse(maxTx)
	if perr != nil {
		// No transactions, or an undecodable max. Fall back to wall clock.
		anchor = s.now().UTC()
	}

	maxLabel, err := s.feed.MaxLabelTime(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("resolve anchor: %w", err)
	}
	if labelAt, perr := timefmt.Parse(maxLabel); perr == nil && labelAt.After(anchor) {
		anchor = labelAt
	}

	return anchor, nil
}
