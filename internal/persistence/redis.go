package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/crm-portal/internal/config"
	"github.com/spec-kit/crm-portal/internal/domain"
)

const roleCacheKeyPrefix = "identity:role:"

// Redis wraps the go-redis client. It doubles as the identity resolver's
// best-effort role cache.
type Redis struct {
	Client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, roleTTL time.Duration, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client, ttl: roleTTL}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// GetRole returns a cached role for the user, if any. Misses and errors are
// indistinguishable on purpose; the resolver falls through to the store.
func (r *Redis) GetRole(ctx context.Context, userID string) (domain.Role, bool) {
	if r == nil || r.Client == nil {
		return "", false
	}
	val, err := r.Client.Get(ctx, roleCacheKeyPrefix+userID).Result()
	if err != nil {
		return "", false
	}
	role := domain.Role(val)
	if !domain.ValidRole(role) {
		return "", false
	}
	return role, true
}

// SetRole caches a resolved role with the configured TTL, best-effort.
func (r *Redis) SetRole(ctx context.Context, userID string, role domain.Role) {
	if r == nil || r.Client == nil || r.ttl <= 0 {
		return
	}
	_ = r.Client.Set(ctx, roleCacheKeyPrefix+userID, string(role), r.ttl).Err()
}

// InvalidateRole drops the cached role after a role change.
func (r *Redis) InvalidateRole(ctx context.Context, userID string) {
	if r == nil || r.Client == nil {
		return
	}
	_ = r.Client.Del(ctx, roleCacheKeyPrefix+userID).Err()
}
