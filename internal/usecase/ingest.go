package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/user/fraud-lens/internal/domain"
	"github.com/user/fraud-lens/internal/pkg/timefmt"
)

type feedIngestService struct {
	txRepo    domain.TransactionRepository
	labelRepo domain.LabelRepository
	scoreRepo domain.ScoreRepository
	logger    *slog.Logger
}

// NewFeedIngestService creates the feed ingestion use case. All writes are
// upserts: transactions are immutable in practice but replays must be
// idempotent, labels are one-per-transaction by invariant, and the latest
// score per transaction wins.
func NewFeedIngestService(
	txRepo domain.TransactionRepository,
	labelRepo domain.LabelRepository,
	scoreRepo domain.ScoreRepository,
	logger *slog.Logger,
) FeedIngestUseCase {
	return &feedIngestService{
		txRepo:    txRepo,
		labelRepo: labelRepo,
		scoreRepo: scoreRepo,
		logger:    logger.With("component", "ingest_usecase"),
	}
}

func (s *feedIngestService) ApplyTransaction(ctx context.Context, tx domain.TransactionEvent) error {
	if tx.TxID <= 0 {
		return fmt.Errorf("%w: transaction id must be positive", domain.ErrInvalidParameter)
	}
	// Reject malformed timestamps at the boundary; a bad encoding here
	// would silently fall out of every string-range filter downstream.
	if _, err := timefmt.Parse(tx.TxUTC); err != nil {
		return fmt.Errorf("transaction %d: %w", tx.TxID, err)
	}

	if err := s.txRepo.Upsert(ctx, tx); err != nil {
		return fmt.Errorf("upsert transaction %d: %w", tx.TxID, err)
	}
	return nil
}

func (s *feedIngestService) ApplyLabel(ctx context.Context, l domain.LabelEvent) error {
	if l.TxID <= 0 {
		return fmt.Errorf("%w: label transaction id must be positive", domain.ErrInvalidParameter)
	}
	if _, err := timefmt.Parse(l.LabeledAt); err != nil {
		return fmt.Errorf("label for transaction %d: %w", l.TxID, err)
	}

	if err := s.labelRepo.Upsert(ctx, l); err != nil {
		return fmt.Errorf("upsert label for transaction %d: %w", l.TxID, err)
	}
	return nil
}

func (s *feedIngestService) ApplyScore(ctx context.Context, sc domain.ScoreEvent) error {
	if sc.TxID <= 0 {
		return fmt.Errorf("%w: score transaction id must be positive", domain.ErrInvalidParameter)
	}

	if err := s.scoreRepo.Upsert(ctx, sc); err != nil {
		return fmt.Errorf("upsert score for transaction %d: %w", sc.TxID, err)
	}
	return nil
}
