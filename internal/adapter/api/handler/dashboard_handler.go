package handler

import (
	"log/slog"
	"net/http"

	"github.com/user/fraud-lens/internal/usecase"
)

// DashboardHandler serves the activity-anchored dashboard queries.
type DashboardHandler struct {
	uc     usecase.DashboardUseCase
	logger *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(uc usecase.DashboardUseCase, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, logger: logger}
}

// Summary handles GET /api/v1/dashboard/summary?days=1.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	days, ok := queryInt(r, "days", usecase.DefaultSummaryDays)
	if !ok {
		writeError(w, http.StatusBadRequest, "days must be an integer")
		return
	}

	sum, err := h.uc.Summary(r.Context(), days)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// DailyFlags handles GET /api/v1/dashboard/daily-flags?days=14.
func (h *DashboardHandler) DailyFlags(w http.ResponseWriter, r *http.Request) {
	days, ok := queryInt(r, "days", usecase.DefaultDailyDays)
	if !ok {
		writeError(w, http.StatusBadRequest, "days must be an integer")
		return
	}

	series, err := h.uc.DailySeries(r.Context(), days)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

// TopMerchants handles GET /api/v1/dashboard/top-merchants?days=30&limit=5&min_tx=20.
func (h *DashboardHandler) TopMerchants(w http.ResponseWriter, r *http.Request) {
	days, ok := queryInt(r, "days", usecase.DefaultTopDays)
	if !ok {
		writeError(w, http.StatusBadRequest, "days must be an integer")
		return
	}
	limit, ok := queryInt(r, "limit", usecase.DefaultTopLimit)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}
	minTx, ok := queryInt(r, "min_tx", usecase.DefaultTopMinSample)
	if !ok {
		writeError(w, http.StatusBadRequest, "min_tx must be an integer")
		return
	}

	ranked, err := h.uc.TopMerchants(r.Context(), days, limit, minTx)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ranked)
}
