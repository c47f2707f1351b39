package session

import (
	"context"
	"time"

	"matchmaker/internal/cache"
)

const revokedKeyPrefix = "session:revoked:"

// RevocationStore remembers session tokens that must no longer be honoured.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisStore keeps revoked token ids in Redis until the token would have expired anyway.
type RedisStore struct {
	cache *cache.Client
}

var _ RevocationStore = (*RedisStore)(nil)

// NewRedisStore creates a new revocation store.
func NewRedisStore(cache *cache.Client) *RedisStore {
	return &RedisStore{cache: cache}
}

// Revoke marks tokenID as revoked for ttl.
func (s *RedisStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, revokedKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked reports whether tokenID was revoked. An unreachable Redis reads as not revoked.
func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	data, err := s.cache.Get(ctx, revokedKeyPrefix+tokenID)
	if err != nil {
		return false, nil
	}
	return data != nil, nil
}
