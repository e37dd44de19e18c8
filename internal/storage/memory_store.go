package storage

import (
	"context"
	"sync"
	"time"

	errorvalues "github.com/limbo/gratudiary/internal/error_values"
)

type MemoryStore struct {
	mu       sync.RWMutex
	values   map[string][]byte
	expiries map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:   make(map[string][]byte),
		expiries: make(map[string]time.Time),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, exists := s.values[key]
	if !exists {
		return nil, errorvalues.ErrKeyNotFound
	}
	if exp, ok := s.expiries[key]; ok && !time.Now().Before(exp) {
		return nil, errorvalues.ErrKeyNotFound
	}
	return clone(v), nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = clone(value)
	delete(s.expiries, key)
	return nil
}

// SetWithTTL stores value until ttl passes. Expired keys are purged on
// every call.
func (s *MemoryStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for k, exp := range s.expiries {
		if !now.Before(exp) {
			delete(s.values, k)
			delete(s.expiries, k)
		}
	}
	s.values[key] = clone(value)
	s.expiries[key] = now.Add(ttl)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	delete(s.expiries, key)
	return nil
}

// Len reports how many keys are held, expired ones included until purged.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

func (s *MemoryStore) Close() error {
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
