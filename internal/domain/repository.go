package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a directory lookup has no match.
var ErrNotFound = errors.New("not found")

// ErrFeedUnavailable marks a failed feed read. The engine never retries
// internally; the caller decides (retrying inside the engine could reorder
// anchor derivation relative to concurrent writers).
var ErrFeedUnavailable = errors.New("feed unavailable")

// ErrInvalidParameter marks a caller-supplied parameter rejected before
// computation (negative day count, non-positive limit, malformed bound).
var ErrInvalidParameter = errors.New("invalid parameter")

// FeedFilter is the coarse, storage-pushable filter for joined feed reads.
// All bounds are canonical timestamp strings compared lexicographically;
// precise instant-level reconciliation happens in memory on the filtered
// subset.
type FeedFilter struct {
	// TxSince keeps rows whose transaction timestamp is >= the bound.
	// Empty means unbounded.
	TxSince string

	// LabelSince widens the set: rows whose label timestamp is >= the
	// bound also qualify, regardless of transaction time.
	LabelSince string

	// IncludeLabeled widens the set to every labeled row regardless of
	// label time. Used by the daily series, which time-filters label
	// instants in memory.
	IncludeLabeled bool
}

// FeedRepository is the read side the aggregators run against.
type FeedRepository interface {
	// ListRows returns the joined feed rows matching the coarse filter,
	// one row per transaction.
	ListRows(ctx context.Context, f FeedFilter) ([]FeedRow, error)

	// MaxTransactionTime returns the lexicographic maximum transaction
	// timestamp, or "" when no transactions exist.
	MaxTransactionTime(ctx context.Context) (string, error)

	// MaxLabelTime returns the lexicographic maximum label timestamp, or
	// "" when no labels exist.
	MaxLabelTime(ctx context.Context) (string, error)
}

// TransactionFilter narrows the transactions listing. String bounds are
// canonical timestamps; zero values mean "no constraint".
type TransactionFilter struct {
	From        string
	To          string
	MerchantID  int64
	MinAmount   *decimal.Decimal
	MaxAmount   *decimal.Decimal
	FlaggedOnly bool
	Limit       int
}

// TransactionRepository stores and lists transaction events.
type TransactionRepository interface {
	List(ctx context.Context, f TransactionFilter) ([]TransactionListRow, error)
	Upsert(ctx context.Context, tx TransactionEvent) error
}

// LabelRepository stores labels, one per transaction (upsert semantics).
type LabelRepository interface {
	Upsert(ctx context.Context, l LabelEvent) error
}

// ScoreRepository stores model scores, latest write per transaction wins.
type ScoreRepository interface {
	Upsert(ctx context.Context, s ScoreEvent) error
}

// MerchantRepository is the merchant directory.
type MerchantRepository interface {
	Get(ctx context.Context, merchantID int64) (MerchantRef, error)
}

// RunRepository exposes the scoring-run registry.
type RunRepository interface {
	// Latest returns the most recent run, or nil when none exist.
	Latest(ctx context.Context) (*ModelRun, error)
}
