package domain

import "github.com/shopspring/decimal"

// TransactionEvent is a single transaction as it appears on the feed.
// Timestamps are carried as canonical strings (see pkg timefmt) so that
// range filters can be pushed to storage as plain string comparisons.
// Events are immutable once ingested; the aggregators never mutate them.
type TransactionEvent struct {
	TxID       int64           `json:"tx_id"`
	TxUTC      string          `json:"tx_utc"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency,omitempty"`
	MerchantID int64           `json:"merchant_id"`
	Channel    string          `json:"channel,omitempty"`
	EntryMode  string          `json:"entry_mode,omitempty"`
	Status     string          `json:"status,omitempty"`
}

// LabelEvent is an analyst (or model-sourced) fraud label. There is at
// most one label per transaction: writing a label is an upsert, never an
// append. No ordering is assumed between LabeledAt and the transaction's
// own timestamp; labels are routinely backfilled on settled transactions.
type LabelEvent struct {
	TxID      int64  `json:"tx_id"`
	Flag      bool   `json:"label"`
	LabeledAt string `json:"labeled_at"`
	Source    string `json:"source,omitempty"`
}

// ScoreEvent is the output of an external model run for one transaction.
// At most one score is active per transaction; the latest write wins.
type ScoreEvent struct {
	TxID      int64   `json:"tx_id"`
	RunID     int64   `json:"run_id"`
	Score     float64 `json:"score"`
	Predicted bool    `json:"label_pred"`
}

// MerchantRef identifies a merchant in the directory. Referenced, not
// owned, by transactions.
type MerchantRef struct {
	MerchantID int64  `json:"merchant_id"`
	Name       string `json:"name"`
	Category   string `json:"category,omitempty"`
	Country    string `json:"country,omitempty"`
}

// ModelRun describes one execution of the external scorer. The dashboard
// surfaces the latest run alongside the KPI snapshot.
type ModelRun struct {
	RunID        int64  `json:"run_id"`
	ModelVersion string `json:"model_version"`
	StartedAt    string `json:"started_at"`
	FinishedAt   string `json:"finished_at,omitempty"`
}

// FeedRow is the joined read-side projection the aggregators consume:
// one row per transaction with its optional label and score prediction
// attached, plus the merchant display name.
type FeedRow struct {
	TxID         int64
	TxUTC        string
	Amount       decimal.Decimal
	MerchantID   int64
	MerchantName string

	HasLabel  bool
	LabelFlag bool
	LabeledAt string

	HasScore  bool
	Predicted bool
}

// Flagged reports whether the transaction counts as fraud-flagged for
// aggregation: the model prediction OR the recorded label. This is a
// non-suppressing OR: an analyst label of false does not hide a true
// model prediction. All aggregators must use this single derivation.
func (r FeedRow) Flagged() bool {
	return (r.HasScore && r.Predicted) || (r.HasLabel && r.LabelFlag)
}

// TransactionListRow is the listing projection for the transactions
// endpoint: the event plus whatever score/label context exists.
type TransactionListRow struct {
	TransactionEvent

	Score     *float64 `json:"score,omitempty"`
	Predicted *bool    `json:"label_pred,omitempty"`
	LabelFlag *bool    `json:"label,omitempty"`
}

// Flagged mirrors FeedRow.Flagged for the listing projection.
func (r TransactionListRow) Flagged() bool {
	return (r.Predicted != nil && *r.Predicted) || (r.LabelFlag != nil && *r.LabelFlag)
}
