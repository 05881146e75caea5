package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/user/fraud-lens/internal/domain"
	"github.com/user/fraud-lens/internal/domain/mocks"
)

func TestDashboardSummary(t *testing.T) {
	wallClock := time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)

	t.Run("Rejects Non-Positive Days", func(t *testing.T) {
		s := testService(&mocks.MockFeedRepository{}, &mocks.MockRunRepository{}, wallClock)
		for _, days := range []int{0, -1} {
			if _, err := s.Summary(context.Background(), days); !errors.Is(err, domain.ErrInvalidParameter) {
				t.Errorf("days=%d: expected ErrInvalidParameter, got %v", days, err)
			}
		}
	})

	t.Run("Aggregates Around The Activity Anchor", func(t *testing.T) {
		feed := &mocks.MockFeedRepository{
			MaxTx: "2025-09-01 12:00:00",
			Rows: []domain.FeedRow{
				{TxID: 1, TxUTC: "2025-09-01 00:00:00", Amount: amount("100.00"), MerchantID: 1,
					MerchantName: "Shop", HasScore: true, Predicted: true},
				{TxID: 2, TxUTC: "2025-09-01 12:00:00", Amount: amount("50.00"), MerchantID: 1,
					MerchantName: "Shop"},
			},
		}
		runs := &mocks.MockRunRepository{
			Run: &domain.ModelRun{RunID: 7, ModelVersion: "xgb-2025-08"},
		}
		s := testService(feed, runs, wallClock)

		sum, err := s.Summary(context.Background(), 1)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if sum.AnchorUTC != "2025-09-01 12:00:00" {
			t.Errorf("anchor = %q, want feed-derived anchor", sum.AnchorUTC)
		}
		if sum.Count != 2 || sum.FlaggedCount != 1 {
			t.Errorf("count=%d flagged=%d, want 2/1", sum.Count, sum.FlaggedCount)
		}
		if want := amount("150.00"); !sum.TotalAmount.Equal(want) {
			t.Errorf("total amount = %s, want %s", sum.TotalAmount, want)
		}
		if sum.LatestRun == nil || sum.LatestRun.RunID != 7 {
			t.Errorf("latest run = %+v, want run 7", sum.LatestRun)
		}

		// Two feed reads: the KPI window and the merchant panel.
		if len(feed.ListCalls) != 2 {
			t.Fatalf("expected 2 feed reads, got %d", len(feed.ListCalls))
		}
		for _, f := range feed.ListCalls {
			if f.TxSince == "" || f.TxSince != f.LabelSince {
				t.Errorf("expected widened window filter pushed down, got %+v", f)
			}
		}
	})

	t.Run("Feed Error Surfaces Without Retry", func(t *testing.T) {
		feed := &mocks.MockFeedRepository{
			MaxTx:   "2025-09-01 12:00:00",
			RowsErr: domain.ErrFeedUnavailable,
		}
		s := testService(feed, &mocks.MockRunRepository{}, wallClock)

		if _, err := s.Summary(context.Background(), 1); !errors.Is(err, domain.ErrFeedUnavailable) {
			t.Errorf("expected ErrFeedUnavailable, got %v", err)
		}
	})
}

func TestDashboardDailySeries(t *testing.T) {
	wallClock := time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)

	t.Run("Rejects Non-Positive Days", func(t *testing.T) {
		s := testService(&mocks.MockFeedRepository{}, &mocks.MockRunRepository{}, wallClock)
		if _, err := s.DailySeries(context.Background(), 0); !errors.Is(err, domain.ErrInvalidParameter) {
			t.Errorf("expected ErrInvalidParameter, got %v", err)
		}
	})

	t.Run("Buckets Old Transaction By Its Recent Label Day", func(t *testing.T) {
		feed := &mocks.MockFeedRepository{
			MaxTx: "2025-09-14 00:00:00",
			Rows: []domain.FeedRow{
				{TxID: 1, TxUTC: "2025-08-01 00:00:00",
					HasLabel: true, LabelFlag: true, LabeledAt: "2025-09-10 00:00:00"},
			},
		}
		s := testService(feed, &mocks.MockRunRepository{}, wallClock)

		points, err := s.DailySeries(context.Background(), 14)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(points) != 14 {
			t.Fatalf("expected 14 entries, got %d", len(points))
		}
		if points[0].Date != "2025-09-01" || points[13].Date != "2025-09-14" {
			t.Errorf("range = %s..%s, want 2025-09-01..2025-09-14", points[0].Date, points[13].Date)
		}

		var credited []string
		for _, p := range points {
			if p.Total > 0 {
				credited = append(credited, p.Date)
			}
		}
		if len(credited) != 1 || credited[0] != "2025-09-10" {
			t.Errorf("credited days = %v, want exactly [2025-09-10]", credited)
		}

		// The coarse filter must keep all labeled rows for in-memory
		// label-time reconciliation.
		if len(feed.ListCalls) != 1 || !feed.ListCalls[0].IncludeLabeled {
			t.Errorf("expected one IncludeLabeled feed read, got %+v", feed.ListCalls)
		}
	})
}

func TestDashboardTopMerchants(t *testing.T) {
	wallClock := time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)

	t.Run("Rejects Invalid Parameters", func(t *testing.T) {
		s := testService(&mocks.MockFeedRepository{}, &mocks.MockRunRepository{}, wallClock)
		cases := []struct {
			name                    string
			days, limit, minSample int
		}{
			{"zero days", 0, 5, 20},
			{"negative days", -7, 5, 20},
			{"zero limit", 30, 0, 20},
			{"zero sample floor", 30, 5, 0},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				if _, err := s.TopMerchants(context.Background(), c.days, c.limit, c.minSample); !errors.Is(err, domain.ErrInvalidParameter) {
					t.Errorf("expected ErrInvalidParameter, got %v", err)
				}
			})
		}
	})

	t.Run("Ranks Eligible Merchants", func(t *testing.T) {
		feed := &mocks.MockFeedRepository{
			MaxTx: "2025-09-14 00:00:00",
			Rows: append(
				merchantRows(1, 1, "Tiny Corner Shop", 5, 4),
				merchantRows(100, 2, "Big Box Retail", 100, 30)...,
			),
		}
		s := testService(feed, &mocks.MockRunRepository{}, wallClock)

		ranked, err := s.TopMerchants(context.Background(), 30, 5, 20)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(ranked) != 1 || ranked[0].Merchant != "Big Box Retail" {
			t.Errorf("unexpected ranking: %+v", ranked)
		}
	})
}
