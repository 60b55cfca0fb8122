package memory

import (
	"context"
	"sync"

	"github.com/Gunvolt24/foodorder/internal/ports"
)

var _ ports.KVStore = (*Store)(nil)

// Store - хранилище профиля в памяти. Используется в тестах и как
// бэкенд для запуска без сохранения между перезапусками.
type Store struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewStore - пустое хранилище.
func NewStore() *Store {
	return &Store{items: make(map[string]string)}
}

// NewStoreFrom - хранилище с начальными значениями (значения копируются).
func NewStoreFrom(seed map[string]string) *Store {
	s := NewStore()
	for k, v := range seed {
		s.items[k] = v
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

// Len - количество ключей.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
