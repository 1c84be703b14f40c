package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hirepath/jobportal-api/internal/api/metrics"
	"github.com/hirepath/jobportal-api/internal/core/domain"
)

const profileTTL = 15 * time.Minute

// ProfileCache caches sanitized user projections in Redis.
// Key format: profile:<user_id>
type ProfileCache struct {
	client *redis.Client
}

// NewProfileCache creates a ProfileCache wrapping the given Redis client.
func NewProfileCache(client *redis.Client) *ProfileCache {
	return &ProfileCache{client: client}
}

// Get returns the cached sanitized user, or (nil, nil) on a miss.
func (c *ProfileCache) Get(ctx context.Context, userID string) (*domain.User, error) {
	raw, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err == redis.Nil {
		metrics.ProfileCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile cache get: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("profile cache decode: %w", err)
	}
	metrics.ProfileCacheTotal.WithLabelValues("hit").Inc()
	return &user, nil
}

// Set stores a sanitized user projection (expires after profileTTL).
// The password hash must already be cleared by the caller; it is never
// written here because User does not serialize it.
func (c *ProfileCache) Set(ctx context.Context, userID string, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(userID), raw, profileTTL).Err()
}

// Invalidate drops the cached projection after a profile mutation.
func (c *ProfileCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}

func (c *ProfileCache) key(userID string) string {
	return "profile:" + userID
}
