package redis

// Package redis provides Redis-based adapters for the portal.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore is a Redis-backed logout denylist. A revoked token ID is
// kept until the token's natural expiry, after which the key lapses and the
// token is rejected by its exp claim anyway.
type RevocationStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRevocationStore creates a revocation store with the default key prefix.
func NewRevocationStore(client redis.UniversalClient) *RevocationStore {
	return &RevocationStore{client: client, prefix: "revoked:"}
}

// NewRevocationStoreWithPrefix creates a revocation store with a custom key prefix.
func NewRevocationStoreWithPrefix(client redis.UniversalClient, prefix string) *RevocationStore {
	return &RevocationStore{client: client, prefix: prefix}
}

func (s *RevocationStore) Revoke(ctx context.Context, jti string, until time.Time) error {
	if jti == "" {
		return errors.New("token ID cannot be empty")
	}

	ttl := time.Until(until)
	if ttl <= 0 {
		// Token is already past its expiry; nothing to deny.
		return nil
	}

	if err := s.client.Set(ctx, s.prefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}

	_, err := s.client.Get(ctx, s.prefix+jti).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis get: %w", err)
	}
	return true, nil
}
