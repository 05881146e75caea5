package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/user/fraud-lens/internal/adapter/metrics"
	"github.com/user/fraud-lens/internal/domain"
)

// MerchantCache is a read-through Redis cache in front of the merchant
// directory. Merchant reference data is effectively immutable, which is
// the only reason caching is safe here: aggregation state and anchors are
// never cached anywhere in this service.
type MerchantCache struct {
	client *redis.Client
	inner  domain.MerchantRepository
	ttl    time.Duration
	logger *slog.Logger
	m      *metrics.Metrics
}

// NewMerchantCache wraps the inner directory with a Redis cache.
func NewMerchantCache(client *redis.Client, inner domain.MerchantRepository, ttl time.Duration, logger *slog.Logger, m *metrics.Metrics) *MerchantCache {
	return &MerchantCache{
		client: client,
		inner:  inner,
		ttl:    ttl,
		logger: logger.With("component", "merchant_cache"),
		m:      m,
	}
}

// Get returns the merchant from cache, falling back to the inner
// directory on miss or on any Redis failure. Cache errors are never
// surfaced; the directory remains the source of truth.
func (c *MerchantCache) Get(ctx context.Context, merchantID int64) (domain.MerchantRef, error) {
	key := fmt.Sprintf("merchant:%d", merchantID)

	payload, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var ref domain.MerchantRef
		if uerr := json.Unmarshal(payload, &ref); uerr == nil {
			c.m.MerchantCacheHits.Inc()
			return ref, nil
		}
		c.logger.Warn("dropping undecodable cache entry", "key", key)
	case errors.Is(err, redis.Nil):
		// miss
	default:
		c.logger.Warn("merchant cache read failed, falling through", "error", err)
	}
	c.m.MerchantCacheMisses.Inc()

	ref, err := c.inner.Get(ctx, merchantID)
	if err != nil {
		return domain.MerchantRef{}, err
	}

	if payload, merr := json.Marshal(ref); merr == nil {
		if serr := c.client.Set(ctx, key, payload, c.ttl).Err(); serr != nil {
			c.logger.Warn("merchant cache write failed", "error", serr)
		}
	}

	return ref, nil
}
