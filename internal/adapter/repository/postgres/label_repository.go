package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/user/fraud-lens/internal/domain"
)

// LabelRepository implements domain.LabelRepository on PostgreSQL. The
// tx_id primary key enforces the one-label-per-transaction invariant;
// relabeling is an update, never a second row.
type LabelRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewLabelRepository creates a new PostgreSQL label repository.
func NewLabelRepository(db *sql.DB, logger *slog.Logger) *LabelRepository {
	return &LabelRepository{db: db, logger: logger.With("component", "label_repository")}
}

// Upsert writes or replaces the label for a transaction.
func (r *LabelRepository) Upsert(ctx context.Context, l domain.LabelEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO labels (tx_id, label, labeled_at, source)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tx_id) DO UPDATE SET
			label = EXCLUDED.label,
			labeled_at = EXCLUDED.labeled_at,
			source = EXCLUDED.source
	`, l.TxID, l.Flag, l.LabeledAt, l.Source)
	if err != nil {
		return fmt.Errorf("upsert label: %w", err)
	}
	return nil
}
