package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/user/fraud-lens/internal/domain"
)

// FeedRepository implements domain.FeedRepository on PostgreSQL. Window
// bounds arrive as canonical timestamp strings and are compared directly
// in SQL; because the encoding sorts lexicographically in chronological
// order, these coarse filters are correct without parsing a single row.
type FeedRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewFeedRepository creates a new PostgreSQL feed repository.
func NewFeedRepository(db *sql.DB, logger *slog.Logger) *FeedRepository {
	return &FeedRepository{db: db, logger: logger.With("component", "feed_repository")}
}

const feedSelect = `
	SELECT t.tx_id, t.tx_utc, t.amount, t.merchant_id, m.name,
	       l.tx_id IS NOT NULL, COALESCE(l.label, FALSE), COALESCE(l.labeled_at, ''),
	       s.tx_id IS NOT NULL, COALESCE(s.label_pred, FALSE)
	FROM transactions t
	JOIN merchants m ON m.merchant_id = t.merchant_id
	LEFT JOIN labels l ON l.tx_id = t.tx_id
	LEFT JOIN tx_scores s ON s.tx_id = t.tx_id
`

// ListRows returns the joined feed rows matching the coarse filter, one
// row per transaction (labels and scores are one-per-transaction).
func (r *FeedRepository) ListRows(ctx context.Context, f domain.FeedFilter) ([]domain.FeedRow, error) {
	query := feedSelect
	var args []interface{}

	switch {
	case f.TxSince != "" && f.IncludeLabeled:
		query += ` WHERE t.tx_utc >= $1 OR l.tx_id IS NOT NULL`
		args = append(args, f.TxSince)
	case f.TxSince != "" && f.LabelSince != "":
		query += ` WHERE t.tx_utc >= $1 OR l.labeled_at >= $2`
		args = append(args, f.TxSince, f.LabelSince)
	case f.TxSince != "":
		query += ` WHERE t.tx_utc >= $1`
		args = append(args, f.TxSince)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query feed rows: %v", domain.ErrFeedUnavailable, err)
	}
	defer rows.Close()

	var out []domain.FeedRow
	for rows.Next() {
		var row domain.FeedRow
		if err := rows.Scan(
			&row.TxID,
			&row.TxUTC,
			&row.Amount,
			&row.MerchantID,
			&row.MerchantName,
			&row.HasLabel,
			&row.LabelFlag,
			&row.LabeledAt,
			&row.HasScore,
			&row.Predicted,
		); err != nil {
			return nil, fmt.Errorf("%w: scan feed row: %v", domain.ErrFeedUnavailable, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate feed rows: %v", domain.ErrFeedUnavailable, err)
	}

	return out, nil
}

// MaxTransactionTime returns the lexicographic maximum tx_utc, backed by
// the timestamp index, or "" when the table is empty.
func (r *FeedRepository) MaxTransactionTime(ctx context.Context) (string, error) {
	return r.maxString(ctx, `SELECT tx_utc FROM transactions ORDER BY tx_utc DESC LIMIT 1`)
}

// MaxLabelTime returns the lexicographic maximum labeled_at, or "" when
// no labels exist.
func (r *FeedRepository) MaxLabelTime(ctx context.Context) (string, error) {
	return r.maxString(ctx, `SELECT labeled_at FROM labels ORDER BY labeled_at DESC LIMIT 1`)
}

func (r *FeedRepository) maxString(ctx context.Context, query string) (string, error) {
	var max string
	err := r.db.QueryRowContext(ctx, query).Scan(&max)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: max timestamp scan: %v", domain.ErrFeedUnavailable, err)
	}
	return max, nil
}
