package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/user/fraud-lens/internal/domain"
)

// MerchantRepository implements the merchant directory on PostgreSQL.
type MerchantRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewMerchantRepository creates a new PostgreSQL merchant repository.
func NewMerchantRepository(db *sql.DB, logger *slog.Logger) *MerchantRepository {
	return &MerchantRepository{db: db, logger: logger.With("component", "merchant_repository")}
}

// Get looks up one merchant by id.
func (r *MerchantRepository) Get(ctx context.Context, merchantID int64) (domain.MerchantRef, error) {
	var (
		ref      domain.MerchantRef
		category sql.NullString
		country  sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT merchant_id, name, category, country
		FROM merchants
		WHERE merchant_id = $1
	`, merchantID).Scan(&ref.MerchantID, &ref.Name, &category, &country)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MerchantRef{}, fmt.Errorf("merchant %d: %w", merchantID, domain.ErrNotFound)
	}
	if err != nil {
		return domain.MerchantRef{}, fmt.Errorf("%w: query merchant: %v", domain.ErrFeedUnavailable, err)
	}
	ref.Category = category.String
	ref.Country = country.String
	return ref, nil
}
