// Package redis looks up profiles kept as plain string keys in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"gliblio/internal/profilelink/models"
	"gliblio/pkg/platform/sentinel"
)

// DefaultKeyPrefix is prepended to the normalized handle to form the key
// holding the identity ID.
const DefaultKeyPrefix = "profile:handle:"

// RedisStore resolves handles with a single GET.
type RedisStore struct {
	client    redis.Cmdable
	keyPrefix string
}

// Option configures a RedisStore.
type Option func(*RedisStore)

// WithKeyPrefix overrides DefaultKeyPrefix.
func WithKeyPrefix(prefix string) Option {
	return func(s *RedisStore) {
		if prefix != "" {
			s.keyPrefix = prefix
		}
	}
}

// NewRedis constructs a Redis-backed profile store.
func NewRedis(client redis.Cmdable, opts ...Option) *RedisStore {
	s := &RedisStore{
		client:    client,
		keyPrefix: DefaultKeyPrefix,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *RedisStore) key(handle string) string {
	return s.keyPrefix + handle
}

func (s *RedisStore) FindByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	id, err := s.client.Get(ctx, s.key(handle)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile key: %w", err)
	}
	if id == "" {
		return nil, sentinel.ErrNotFound
	}
	return &models.Profile{Handle: handle, IdentityID: id}, nil
}

// Put stores a handle → identity ID mapping. Used for seeding.
func (s *RedisStore) Put(ctx context.Context, handle, identityID string) error {
	if err := s.client.Set(ctx, s.key(handle), identityID, 0).Err(); err != nil {
		return fmt.Errorf("set profile key: %w", err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
