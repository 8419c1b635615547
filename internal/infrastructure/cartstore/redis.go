package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/roastline/storefront/internal/domain/cart"
	"github.com/roastline/storefront/internal/domain/shared"
	"go.uber.org/zap"
)

// keyPrefix versions the snapshot layout; bump it when the cart JSON
// shape changes incompatibly so stale snapshots age out instead of
// failing to decode forever.
const keyPrefix = "cart:v1:"

// RedisStore implements cart.Store with JSON snapshots in Redis.
// Writes are last-write-wins; concurrent sessions on the same cart ID
// resolve to whichever snapshot lands last.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore creates a cart store on an existing Redis client
func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Load fetches the cart snapshot for the ID.
// Returns shared.ErrNotFound when no snapshot exists and
// shared.ErrCartCorrupted when one exists but cannot be decoded.
func (s *RedisStore) Load(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, keyPrefix+id.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		s.logger.Warn("cart snapshot is corrupted, discarding",
			zap.String("cart_id", id.String()),
			zap.Error(err),
		)
		return nil, shared.ErrCartCorrupted
	}
	return &c, nil
}

// Save writes the cart snapshot and refreshes its TTL
func (s *RedisStore) Save(ctx context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+c.ID.String(), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}
	return nil
}

// Delete removes the cart snapshot. Deleting an absent cart is a no-op.
func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, keyPrefix+id.String()).Err(); err != nil {
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}
	return nil
}

var _ cart.Store = (*RedisStore)(nil)
