package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/user/fraud-lens/internal/domain"
)

// Defaults for the dashboard query parameters when the caller omits them.
const (
	DefaultSummaryDays  = 1
	DefaultDailyDays    = 14
	DefaultTopDays      = 30
	DefaultTopLimit     = 5
	DefaultTopMinSample = 20

	// The summary page embeds a fixed merchant risk panel, matching the
	// historical dashboard: trailing 7 days, sample floor 10, top 5.
	summaryPanelDays      = 7
	summaryPanelMinSample = 10
	summaryPanelLimit     = 5
)

// WindowKPIs is the rolling-window KPI snapshot.
type WindowKPIs struct {
	Count        int             `json:"count"`
	FlaggedCount int             `json:"flagged_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// DailyPoint is one calendar-day bucket of the daily series.
type DailyPoint struct {
	Date    string `json:"date"`
	Total   int    `json:"total"`
	Flagged int    `json:"flagged"`
}

// MerchantRow is one entry of the ranked merchant risk table.
type MerchantRow struct {
	MerchantID int64   `json:"merchant_id"`
	Merchant   string  `json:"merchant"`
	Total      int     `json:"total"`
	Flagged    int     `json:"flagged"`
	Rate       float64 `json:"rate"`
}

// Summary is the dashboard KPI snapshot for one trailing window.
type Summary struct {
	AnchorUTC    string           `json:"anchor_utc"`
	WindowDays   int              `json:"window_days"`
	Count        int              `json:"count"`
	FlaggedCount int              `json:"flagged_count"`
	TotalAmount  decimal.Decimal  `json:"total_amount"`
	LatestRun    *domain.ModelRun `json:"latest_run,omitempty"`
	TopMerchants []MerchantRow    `json:"top_merchants"`
}

// DashboardUseCase serves the activity-anchored dashboard aggregations.
// All operations are pure reads; each resolves the anchor fresh from the
// feed and is independently safe to execute concurrently.
type DashboardUseCase interface {
	Summary(ctx context.Context, days int) (*Summary, error)
	DailySeries(ctx context.Context, days int) ([]DailyPoint, error)
	TopMerchants(ctx context.Context, days, limit, minSample int) ([]MerchantRow, error)
}

// FeedIngestUseCase applies feed events to storage with upsert semantics.
type FeedIngestUseCase interface {
	ApplyTransaction(ctx context.Context, tx domain.TransactionEvent) error
	ApplyLabel(ctx context.Context, l domain.LabelEvent) error
	ApplyScore(ctx context.Context, s domain.ScoreEvent) error
}
