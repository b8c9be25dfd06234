package storage

import (
	"context"
	"errors"
	"sync"
)

var ErrWriteRejected = errors.New("write rejected")

// MemoryStore is a process-local KV. FailWrites makes every Set fail,
// which is how tests simulate a broken storage primitive.
type MemoryStore struct {
	mu         sync.RWMutex
	values     map[string]string
	failWrites bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return ErrWriteRejected
	}
	s.values[key] = value
	return nil
}

func (s *MemoryStore) FailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrites = fail
}
