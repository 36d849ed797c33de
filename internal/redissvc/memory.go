package redissvc

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// MemoryStore keeps blobs in process memory. Values are still JSON encoded so
// it behaves like RedisStore, including for corrupt data.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
	log  logrus.FieldLogger
}

func NewMemoryStore(log logrus.FieldLogger) *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
		log:  log,
	}
}

func (s *MemoryStore) Load(ctx context.Context, key string, dst any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	data, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return decode(s.log, key, data, dst), nil
}

func (s *MemoryStore) Save(ctx context.Context, key string, v any) error {
	const op = "MemoryStore.Save"

	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.data[key] = data
	s.mu.Unlock()
	return nil
}

// SetRaw stores data under key without encoding.
func (s *MemoryStore) SetRaw(key string, data []byte) {
	s.mu.Lock()
	s.data[key] = data
	s.mu.Unlock()
}

func (s *MemoryStore) Delete(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	for _, k := range keys {
		delete(s.data, k)
	}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}
