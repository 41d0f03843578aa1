// Package cache holds the redis-backed cache for the public published-offers
// listing. The cache is best-effort: any redis failure falls back to the
// database read.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	publishedOffersKey = "offers:published"
	publishedOffersTTL = 30 * time.Second
)

// ErrMiss is returned when no cached value is available.
var ErrMiss = errors.New("cache miss")

// OfferCache caches the serialized published-offers response.
type OfferCache struct {
	client *redis.Client
}

// NewOfferCache wraps the redis client; a nil client disables caching.
func NewOfferCache(client *redis.Client) *OfferCache {
	return &OfferCache{client: client}
}

// GetPublished unmarshals the cached listing into dest.
func (c *OfferCache) GetPublished(ctx context.Context, dest any) error {
	if c == nil || c.client == nil {
		return ErrMiss
	}
	payload, err := c.client.Get(ctx, publishedOffersKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return err
	}
	return json.Unmarshal(payload, dest)
}

// SetPublished stores the listing with a short TTL.
func (c *OfferCache) SetPublished(ctx context.Context, value any) error {
	if c == nil || c.client == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, publishedOffersKey, payload, publishedOffersTTL).Err()
}

// Invalidate drops the cached listing after any offer mutation.
func (c *OfferCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, publishedOffersKey)
}
