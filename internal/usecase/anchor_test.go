package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/user/fraud-lens/internal/domain"
	"github.com/user/fraud-lens/internal/domain/mocks"
)

func testService(feed *mocks.MockFeedRepository, runs *mocks.MockRunRepository, now time.Time) *dashboardService {
	return &dashboardService{
		feed:   feed,
		runs:   runs,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    func() time.Time { return now },
	}
}

func TestResolveAnchor(t *testing.T) {
	wallClock := time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)

	t.Run("Transaction Max Wins When Labels Are Older", func(t *testing.T) {
		feed := &mocks.MockFeedRepository{
			MaxTx:    "2025-09-14 08:00:00",
			MaxLabel: "2025-09-10 00:00:00",
		}
		s := testService(feed, &mocks.MockRunRepository{}, wallClock)

		anchor, err := s.resolveAnchor(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := time.Date(2025, 9, 14, 8, 0, 0, 0, time.UTC)
		if !anchor.Equal(want) {
			t.Errorf("anchor = %v, want %v", anchor, want)
		}
	})

	t.Run("Strictly Later Label Overrides", func(t *testing.T) {
		feed := &mocks.MockFeedRepository{
			MaxTx:    "2025-09-14 08:00:00",
			MaxLabel: "2025-09-16 12:30:00",
		}
		s := testService(feed, &mocks.MockRunRepository{}, wallClock)

		anchor, err := s.resolveAnchor(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := time.Date(2025, 9, 16, 12, 30, 0, 0, time.UTC)
		if !anchor.Equal(want) {
			t.Errorf("anchor = %v, want %v", anchor, want)
		}
	})

	t.Run("Equal Label Does Not Override", func(t *testing.T) {
		feed := &mocks.MockFeedRepository{
			MaxTx:    "2025-09-14 08:00:00",
			MaxLabel: "2025-09-14 08:00:00",
		}
		s := testService(feed, &mocks.MockRunRepository{}, wallClock)

		anchor, err := s.resolveAnchor(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := time.Date(2025, 9, 14, 8, 0, 0, 0, time.UTC)
		if !anchor.Equal(want) {
			t.Errorf("anchor = %v, want %v", anchor, want)
		}
	})

	t.Run("Empty Feed Falls Back To Wall Clock", func(t *testing.T) {
		feed := &mocks.MockFeedRepository{}
		s := testService(feed, &mocks.MockRunRepository{}, wallClock)

		anchor, err := s.resolveAnchor(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !anchor.Equal(wallClock) {
			t.Errorf("anchor = %v, want wall clock %v", anchor, wallClock)
		}
	})

	t.Run("Malformed Transaction Max Falls Back But Label Still Applies", func(t *testing.T) {
		feed := &mocks.MockFeedRepository{
			MaxTx:    "garbage",
			MaxLabel: "2025-09-25 00:00:00",
		}
		s := testService(feed, &mocks.MockRunRepository{}, wallClock)

		anchor, err := s.resolveAnchor(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := time.Date(2025, 9, 25, 0, 0, 0, 0, time.UTC)
		if !anchor.Equal(want) {
			t.Errorf("anchor = %v, want label-derived %v", anchor, want)
		}
	})

	t.Run("Malformed Label Max Is Ignored", func(t *testing.T) {
		feed := &mocks.MockFeedRepository{
			MaxTx:    "2025-09-14 08:00:00",
			MaxLabel: "2025/09/16 12:30:00",
		}
		s := testService(feed, &mocks.MockRunRepository{}, wallClock)

		anchor, err := s.resolveAnchor(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := time.Date(2025, 9, 14, 8, 0, 0, 0, time.UTC)
		if !anchor.Equal(want) {
			t.Errorf("anchor = %v, want %v", anchor, want)
		}
	})

	t.Run("Feed Error Surfaces", func(t *testing.T) {
		feed := &mocks.MockFeedRepository{
			MaxTxErr: domain.ErrFeedUnavailable,
		}
		s := testService(feed, &mocks.MockRunRepository{}, wallClock)

		_, err := s.resolveAnchor(context.Background())
		if !errors.Is(err, domain.ErrFeedUnavailable) {
			t.Errorf("expected ErrFeedUnavailable, got %v", err)
		}
	})
}
