package storage

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/kapu/vidchat-go/pkg/errors"
)

// MemoryStore is a map-backed Store for tests and throwaway sessions. Values
// round-trip through JSON so behaviour matches the persistent backends.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string, dest any) (bool, error) {
	s.mu.RLock()
	value, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}

	if dest != nil {
		if err := json.Unmarshal([]byte(value), dest); err != nil {
			return false, nil
		}
	}

	return true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value any) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return errors.NewStorageError("marshal failed", "set", key, err)
	}

	s.mu.Lock()
	s.values[key] = string(jsonData)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// Len reports the number of stored keys. Test helper.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
