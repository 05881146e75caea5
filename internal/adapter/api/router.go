package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/fraud-lens/internal/adapter/api/handler"
	"github.com/user/fraud-lens/internal/adapter/api/middleware"
	"github.com/user/fraud-lens/internal/adapter/metrics"
	"github.com/user/fraud-lens/internal/domain"
	"github.com/user/fraud-lens/internal/pkg/config"
	"github.com/user/fraud-lens/internal/usecase"
)

// NewRouter creates and configures the main HTTP router for the query service.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	m *metrics.Metrics,
	dashboard usecase.DashboardUseCase,
	txRepo domain.TransactionRepository,
	directory domain.MerchantRepository,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics(m))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	dashboardHandler := handler.NewDashboardHandler(dashboard, logger)
	transactionsHandler := handler.NewTransactionsHandler(txRepo, logger)
	merchantsHandler := handler.NewMerchantsHandler(directory, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/summary", dashboardHandler.Summary)
			r.Get("/daily-flags", dashboardHandler.DailyFlags)
			r.Get("/top-merchants", dashboardHandler.TopMerchants)
		})
		r.Get("/transactions", transactionsHandler.List)
		r.Get("/merchants/{id}", merchantsHandler.Get)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
