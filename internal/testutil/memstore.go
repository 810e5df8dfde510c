package testutil

import (
	"context"
	"sync"
)

// MemStore is an in-memory key-value store satisfying repository.KVStore.
// GetErr and SetErr, when non-nil, are returned instead of touching data.
type MemStore struct {
	mu     sync.Mutex
	data   map[string]string
	writes int

	GetErr error
	SetErr error
}

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]string)}
}

func (s *MemStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return "", false, s.GetErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	s.data[key] = value
	s.writes++
	return nil
}

// Raw returns the stored value for key, bypassing error injection.
func (s *MemStore) Raw(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

// Put seeds a raw value, bypassing error injection.
func (s *MemStore) Put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// Writes counts successful Set calls.
func (s *MemStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
