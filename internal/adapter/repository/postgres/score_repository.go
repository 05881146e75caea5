package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/user/fraud-lens/internal/domain"
)

// ScoreRepository implements domain.ScoreRepository on PostgreSQL. One
// active score per transaction; the latest write wins.
type ScoreRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewScoreRepository creates a new PostgreSQL score repository.
func NewScoreRepository(db *sql.DB, logger *slog.Logger) *ScoreRepository {
	return &ScoreRepository{db: db, logger: logger.With("component", "score_repository")}
}

// Upsert writes or replaces the score for a transaction.
func (r *ScoreRepository) Upsert(ctx context.Context, s domain.ScoreEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tx_scores (tx_id, run_id, score, label_pred)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tx_id) DO UPDATE SET
			run_id = EXCLUDED.run_id,
			score = EXCLUDED.score,
			label_pred = EXCLUDED.label_pred
	`, s.TxID, s.RunID, s.Score, s.Predicted)
	if err != nil {
		return fmt.Errorf("upsert score: %w", err)
	}
	return nil
}
