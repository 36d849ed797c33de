// Package redissvc persists per-profile collections (user, chat history, cart)
// as JSON blobs in a key-value store.
package redissvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Fixed collection names, namespaced per profile by Key.
const (
	UserKey    = "ecommerce_user"
	HistoryKey = "chat_history"
	CartKey    = "ecommerce_cart"
)

// Key returns the storage key of a profile collection.
func Key(profileID, name string) string {
	return "profile:" + profileID + ":" + name
}

// Store is the persistence contract: hand back the last-saved value or report
// that there is none, and replace it after each change.
type Store interface {
	// Load decodes the value under key into dst. found is false when the key is
	// missing or its blob cannot be decoded.
	Load(ctx context.Context, key string, dst any) (found bool, err error)
	Save(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
	log logrus.FieldLogger
}

// NewRedisStore wraps a client. A zero ttl keeps keys forever.
func NewRedisStore(rdb *redis.Client, ttl time.Duration, log logrus.FieldLogger) *RedisStore {
	return &RedisStore{
		rdb: rdb,
		ttl: ttl,
		log: log,
	}
}

func (s *RedisStore) Rdb() *redis.Client {
	return s.rdb
}

func (s *RedisStore) Load(ctx context.Context, key string, dst any) (bool, error) {
	const op = "RedisStore.Load"

	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return decode(s.log, key, data, dst), nil
}

func (s *RedisStore) Save(ctx context.Context, key string, v any) error {
	const op = "RedisStore.Save"

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	const op = "RedisStore.Delete"

	if len(keys) == 0 {
		return nil
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// decode reports whether data could be decoded into dst. Corrupt blobs are
// logged and treated as absent.
func decode(log logrus.FieldLogger, key string, data []byte, dst any) bool {
	if err := json.Unmarshal(data, dst); err != nil {
		log.WithError(err).WithField("key", key).Warn("discarding unreadable stored value")
		return false
	}
	return true
}
