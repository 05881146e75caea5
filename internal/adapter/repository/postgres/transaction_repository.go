package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/user/fraud-lens/internal/domain"
)

const defaultListLimit = 200

// TransactionRepository implements domain.TransactionRepository on PostgreSQL.
type TransactionRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewTransactionRepository creates a new PostgreSQL transaction repository.
func NewTransactionRepository(db *sql.DB, logger *slog.Logger) *TransactionRepository {
	return &TransactionRepository{db: db, logger: logger.With("component", "transaction_repository")}
}

// List returns transactions matching the filter, newest first. All
// timestamp bounds are pushed down as string comparisons; ordering by
// tx_utc is safe because the canonical format sorts chronologically.
func (r *TransactionRepository) List(ctx context.Context, f domain.TransactionFilter) ([]domain.TransactionListRow, error) {
	query := `
		SELECT t.tx_id, t.tx_utc, t.amount, t.currency, t.merchant_id,
		       t.channel, t.entry_mode, t.status,
		       s.score, s.label_pred, l.label
		FROM transactions t
		LEFT JOIN tx_scores s ON s.tx_id = t.tx_id
		LEFT JOIN labels l ON l.tx_id = t.tx_id
	`

	var (
		conds []string
		args  []interface{}
	)
	argIdx := 1
	add := func(cond string, vals ...interface{}) {
		conds = append(conds, cond)
		args = append(args, vals...)
		argIdx += len(vals)
	}

	if f.From != "" {
		add(fmt.Sprintf("t.tx_utc >= $%d", argIdx), f.From)
	}
	if f.To != "" {
		add(fmt.Sprintf("t.tx_utc < $%d", argIdx), f.To)
	}
	if f.MerchantID != 0 {
		add(fmt.Sprintf("t.merchant_id = $%d", argIdx), f.MerchantID)
	}
	if f.MinAmount != nil {
		add(fmt.Sprintf("t.amount >= $%d", argIdx), *f.MinAmount)
	}
	if f.MaxAmount != nil {
		add(fmt.Sprintf("t.amount <= $%d", argIdx), *f.MaxAmount)
	}
	if f.FlaggedOnly {
		conds = append(conds, "(COALESCE(s.label_pred, FALSE) OR COALESCE(l.label, FALSE))")
	}

	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	query += fmt.Sprintf(" ORDER BY t.tx_utc DESC LIMIT $%d", argIdx)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query transactions: %v", domain.ErrFeedUnavailable, err)
	}
	defer rows.Close()

	var out []domain.TransactionListRow
	for rows.Next() {
		var (
			row       domain.TransactionListRow
			currency  sql.NullString
			channel   sql.NullString
			entryMode sql.NullString
			status    sql.NullString
			score     sql.NullFloat64
			predicted sql.NullBool
			label     sql.NullBool
		)
		if err := rows.Scan(
			&row.TxID, &row.TxUTC, &row.Amount, &currency, &row.MerchantID,
			&channel, &entryMode, &status,
			&score, &predicted, &label,
		); err != nil {
			return nil, fmt.Errorf("%w: scan transaction: %v", domain.ErrFeedUnavailable, err)
		}
		row.Currency = currency.String
		row.Channel = channel.String
		row.EntryMode = entryMode.String
		row.Status = status.String
		if score.Valid {
			row.Score = &score.Float64
		}
		if predicted.Valid {
			row.Predicted = &predicted.Bool
		}
		if label.Valid {
			row.LabelFlag = &label.Bool
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate transactions: %v", domain.ErrFeedUnavailable, err)
	}

	return out, nil
}

// Upsert writes a transaction idempotently, keyed by tx_id, so feed
// replays converge on the same row.
func (r *TransactionRepository) Upsert(ctx context.Context, tx domain.TransactionEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (tx_id, tx_utc, amount, currency, merchant_id, channel, entry_mode, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (tx_id) DO UPDATE SET
			tx_utc = EXCLUDED.tx_utc,
			amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			merchant_id = EXCLUDED.merchant_id,
			channel = EXCLUDED.channel,
			entry_mode = EXCLUDED.entry_mode,
			status = EXCLUDED.status
	`, tx.TxID, tx.TxUTC, tx.Amount, tx.Currency, tx.MerchantID, tx.Channel, tx.EntryMode, tx.Status)
	if err != nil {
		return fmt.Errorf("upsert transaction: %w", err)
	}
	return nil
}
