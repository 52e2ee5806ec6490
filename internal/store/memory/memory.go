// Package memory is an in-memory key-value store for tests.
package memory

import (
	"context"
	"sync"

	"github.com/Spok95/whiplash-bot/internal/store"
)

var _ store.KV = (*Store)(nil)

type Store struct {
	mu   sync.RWMutex
	data map[string]string

	// FailWrites makes every Set return this error, for exercising the
	// "warn but keep session state" persistence-failure path.
	FailWrites error
}

func New() *Store {
	return &Store{data: map[string]string{}}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.data[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
