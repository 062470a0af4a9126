package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/podstore/podstore/internal/models"
)

// CartStore persists carts in Redis, one JSON document per cart owner.
// Every write re-serializes the whole cart and refreshes the TTL, so an
// active cart never expires.
type CartStore struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewCartStore creates a CartStore with the given sliding TTL.
func NewCartStore(redisClient *RedisClient, ttl time.Duration) *CartStore {
	return &CartStore{
		redis: redisClient,
		ttl:   ttl,
	}
}

func (s *CartStore) key(cartID string) string {
	return fmt.Sprintf("cart:%s", cartID)
}

// Load reads the cart for the given owner. A missing key yields an empty
// cart. A payload that no longer parses also yields an empty cart: a
// corrupt cart must never make the storefront unusable.
func (s *CartStore) Load(ctx context.Context, cartID string) (*models.Cart, error) {
	raw, err := s.redis.Get(ctx, s.key(cartID))
	if err != nil {
		if err == redis.Nil {
			return &models.Cart{}, nil
		}
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		log.Warn().Str("cart_id", cartID).Err(err).Msg("discarding malformed cart payload")
		return &models.Cart{}, nil
	}
	return &cart, nil
}

// Save serializes the full cart and stores it under the owner's key.
func (s *CartStore) Save(ctx context.Context, cartID string, cart *models.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := s.redis.Set(ctx, s.key(cartID), string(payload), s.ttl); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

// Clear removes the cart for the given owner.
func (s *CartStore) Clear(ctx context.Context, cartID string) error {
	return s.redis.Delete(ctx, s.key(cartID))
}
