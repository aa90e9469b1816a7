package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on a Redis client. Redis owns record expiry;
// the store only translates keys and error shapes.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an already-connected Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, realm Realm, principalID, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, realm.SessionKey(principalID), value, ttl).Err(); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, realm Realm, principalID string) (string, error) {
	v, err := s.client.Get(ctx, realm.SessionKey(principalID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoSession
		}
		return "", storeErr(err)
	}
	return v, nil
}

func (s *RedisStore) Exists(ctx context.Context, realm Realm, principalID string) (bool, error) {
	n, err := s.client.Exists(ctx, realm.SessionKey(principalID)).Result()
	if err != nil {
		return false, storeErr(err)
	}
	return n > 0, nil
}

func (s *RedisStore) Delete(ctx context.Context, realm Realm, principalID string) error {
	if err := s.client.Del(ctx, realm.SessionKey(principalID)).Err(); err != nil {
		return storeErr(err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
