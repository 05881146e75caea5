package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/user/fraud-lens/internal/domain"
	"github.com/user/fraud-lens/internal/pkg/timefmt"
)

type dashboardService struct {
	feed   domain.FeedRepository
	runs   domain.RunRepository
	logger *slog.Logger

	// now is swappable for tests; the anchor falls back to it when the
	// feed is empty.
	now func() time.Time
}

// NewDashboardService creates the dashboard aggregation use case.
func NewDashboardService(feed domain.FeedRepository, runs domain.RunRepository, logger *slog.Logger) DashboardUseCase {
	return &dashboardService{
		feed:   feed,
		runs:   runs,
		logger: logger.With("component", "dashboard_usecase"),
		now:    time.Now,
	}
}

// Summary computes the rolling KPI snapshot for a trailing window of the
// given number of days, plus the latest scoring run and the fixed 7-day
// merchant risk panel. The three reads share the anchor and the same
// read-only feed, so they run concurrently and join before returning.
func (s *dashboardService) Summary(ctx context.Context, days int) (*Summary, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: window days must be positive, got %d", domain.ErrInvalidParameter, days)
	}

	ctx, span := otel.Tracer("dashboard").Start(ctx, "Summary")
	defer span.End()

	anchor, err := s.resolveAnchor(ctx)
	if err != nil {
		return nil, err
	}

	lower := timefmt.Format(anchor.AddDate(0, 0, -days))
	panelLower := timefmt.Format(anchor.AddDate(0, 0, -summaryPanelDays))

	var (
		wg       sync.WaitGroup
		kpis     WindowKPIs
		run      *domain.ModelRun
		panel    []MerchantRow
		kpiErr   error
		runErr   error
		panelErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		rows, err := s.feed.ListRows(ctx, domain.FeedFilter{TxSince: lower, LabelSince: lower})
		if err != nil {
			kpiErr = fmt.Errorf("window rows: %w", err)
			return
		}
		kpis = aggregateWindow(rows, lower)
	}()
	go func() {
		defer wg.Done()
		run, runErr = s.runs.Latest(ctx)
	}()
	go func() {
		defer wg.Done()
		rows, err := s.feed.ListRows(ctx, domain.FeedFilter{TxSince: panelLower, LabelSince: panelLower})
		if err != nil {
			panelErr = fmt.Errorf("merchant panel rows: %w", err)
			return
		}
		panel = rankMerchants(rows, panelLower, summaryPanelMinSample, summaryPanelLimit)
	}()
	wg.Wait()

	for _, err := range []error{kpiErr, runErr, panelErr} {
		if err != nil {
			return nil, err
		}
	}

	return &Summary{
		AnchorUTC:    timefmt.Format(anchor),
		WindowDays:   days,
		Count:        kpis.Count,
		FlaggedCount: kpis.FlaggedCount,
		TotalAmount:  kpis.TotalAmount,
		LatestRun:    run,
		TopMerchants: panel,
	}, nil
}

// DailySeries returns one bucket per calendar day for the trailing range
// ending at the anchor's date, oldest first, gap-free.
func (s *dashboardService) DailySeries(ctx context.Context, days int) ([]DailyPoint, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: day count must be positive, got %d", domain.ErrInvalidParameter, days)
	}

	ctx, span := otel.Tracer("dashboard").Start(ctx, "DailySeries")
	defer span.End()

	anchor, err := s.resolveAnchor(ctx)
	if err != nil {
		return nil, err
	}

	start := timefmt.DayStart(anchor).AddDate(0, 0, -(days - 1))

	// Coarse filter: rows inside the range by transaction time, plus every
	// labeled row; label instants are range-checked in memory during
	// bucketing. This bounds parsing cost to the filtered subset.
	rows, err := s.feed.ListRows(ctx, domain.FeedFilter{
		TxSince:        timefmt.Format(start),
		IncludeLabeled: true,
	})
	if err != nil {
		return nil, fmt.Errorf("daily rows: %w", err)
	}

	return bucketDaily(rows, start, days), nil
}

// TopMerchants returns the ranked merchant risk table for a trailing
// window of the given number of days.
func (s *dashboardService) TopMerchants(ctx context.Context, days, limit, minSample int) ([]MerchantRow, error) {
	switch {
	case days <= 0:
		return nil, fmt.Errorf("%w: window days must be positive, got %d", domain.ErrInvalidParameter, days)
	case limit <= 0:
		return nil, fmt.Errorf("%w: limit must be positive, got %d", domain.ErrInvalidParameter, limit)
	case minSample < 1:
		return nil, fmt.Errorf("%w: min sample size must be at least 1, got %d", domain.ErrInvalidParameter, minSample)
	}

	ctx, span := otel.Tracer("dashboard").Start(ctx, "TopMerchants")
	defer span.End()

	anchor, err := s.resolveAnchor(ctx)
	if err != nil {
		return nil, err
	}

	lower := timefmt.Format(anchor.AddDate(0, 0, -days))
	rows, err := s.feed.ListRows(ctx, domain.FeedFilter{TxSince: lower, LabelSince: lower})
	if err != nil {
		return nil, fmt.Errorf("merchant rows: %w", err)
	}

	return rankMerchants(rows, lower, minSample, limit), nil
}
