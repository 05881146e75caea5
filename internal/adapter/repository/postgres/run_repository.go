package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/user/fraud-lens/internal/domain"
)

// RunRepository implements the scoring-run registry on PostgreSQL.
type RunRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewRunRepository creates a new PostgreSQL run repository.
func NewRunRepository(db *sql.DB, logger *slog.Logger) *RunRepository {
	return &RunRepository{db: db, logger: logger.With("component", "run_repository")}
}

// Latest returns the most recent model run, or nil when no runs exist.
func (r *RunRepository) Latest(ctx context.Context) (*domain.ModelRun, error) {
	var run domain.ModelRun
	err := r.db.QueryRowContext(ctx, `
		SELECT run_id, model_version, started_at, COALESCE(finished_at, '')
		FROM runs
		ORDER BY run_id DESC
		LIMIT 1
	`).Scan(&run.RunID, &run.ModelVersion, &run.StartedAt, &run.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query latest run: %v", domain.ErrFeedUnavailable, err)
	}
	return &run, nil
}
