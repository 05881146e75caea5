package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/fraud-lens/internal/domain"
)

// MerchantsHandler serves merchant directory lookups.
type MerchantsHandler struct {
	directory domain.MerchantRepository
	logger    *slog.Logger
}

// NewMerchantsHandler creates a new MerchantsHandler.
func NewMerchantsHandler(directory domain.MerchantRepository, logger *slog.Logger) *MerchantsHandler {
	return &MerchantsHandler{directory: directory, logger: logger}
}

// Get handles GET /api/v1/merchants/{id}.
func (h *MerchantsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "merchant id must be a positive integer")
		return
	}

	ref, err := h.directory.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ref)
}
