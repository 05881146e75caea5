package handler

import (
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/user/fraud-lens/internal/domain"
	"github.com/user/fraud-lens/internal/pkg/timefmt"
)

// TransactionsHandler serves the filtered transactions listing.
type TransactionsHandler struct {
	repo   domain.TransactionRepository
	logger *slog.Logger
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(repo domain.TransactionRepository, logger *slog.Logger) *TransactionsHandler {
	return &TransactionsHandler{repo: repo, logger: logger}
}

// List handles
// GET /api/v1/transactions?from&to&merchant_id&min_amount&max_amount&flagged_only&limit.
// Time bounds accept either a canonical timestamp or a bare date, which
// is expanded to midnight; both push down as string-range filters.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f domain.TransactionFilter

	var ok bool
	if f.From, ok = timeBound(q.Get("from")); !ok {
		writeError(w, http.StatusBadRequest, "from must be YYYY-MM-DD or YYYY-MM-DD HH:MM:SS")
		return
	}
	if f.To, ok = timeBound(q.Get("to")); !ok {
		writeError(w, http.StatusBadRequest, "to must be YYYY-MM-DD or YYYY-MM-DD HH:MM:SS")
		return
	}

	merchantID, ok := queryInt(r, "merchant_id", 0)
	if !ok || merchantID < 0 {
		writeError(w, http.StatusBadRequest, "merchant_id must be a positive integer")
		return
	}
	f.MerchantID = int64(merchantID)

	if f.MinAmount, ok = amountBound(q.Get("min_amount")); !ok {
		writeError(w, http.StatusBadRequest, "min_amount must be a decimal")
		return
	}
	if f.MaxAmount, ok = amountBound(q.Get("max_amount")); !ok {
		writeError(w, http.StatusBadRequest, "max_amount must be a decimal")
		return
	}

	f.FlaggedOnly = q.Get("flagged_only") == "true"

	if f.Limit, ok = queryInt(r, "limit", 0); !ok || f.Limit < 0 {
		writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}

	rows, err := h.repo.List(r.Context(), f)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// timeBound normalizes an optional time filter to a canonical timestamp.
func timeBound(raw string) (string, bool) {
	if raw == "" {
		return "", true
	}
	if len(raw) == len(timefmt.DayLayout) {
		raw += " 00:00:00"
	}
	if _, err := timefmt.Parse(raw); err != nil {
		return "", false
	}
	return raw, true
}

// amountBound parses an optional decimal filter.
func amountBound(raw string) (*decimal.Decimal, bool) {
	if raw == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, false
	}
	return &d, true
}
