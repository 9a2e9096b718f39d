package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meinhoongagan/servicehub/logger"
	"github.com/redis/go-redis/v9"
)

// Connect opens a client and pings it. An empty addr means no redis, and
// the returned client is nil.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		logger.Log.Warn("REDIS_ADDR not set, token revocation disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Log.WithField("addr", addr).Info("connected to redis")
	return client, nil
}

const revokedPrefix = "revoked:jti:"

// TokenStore is a denylist of revoked token ids. Entries expire with the
// token they revoke. A TokenStore without a client revokes nothing.
type TokenStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client, now: time.Now}
}

// Revoke denies jti until the token's own expiry.
func (s *TokenStore) Revoke(ctx context.Context, jti string, until time.Time) error {
	if s == nil || s.client == nil {
		return nil
	}
	ttl := until.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedPrefix+jti, 1, ttl).Err()
}

func (s *TokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if s == nil || s.client == nil {
		return false, nil
	}
	err := s.client.Get(ctx, revokedPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
