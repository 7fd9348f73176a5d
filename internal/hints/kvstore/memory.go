package kvstore

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore: 프로세스 로컬 맵 저장소 (단일 인스턴스, 개발/테스트용)
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryStore: 빈 MemoryStore 를 생성한다.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]string)}
}

func (s *MemoryStore) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[key]
	return value, ok, nil
}

func (s *MemoryStore) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *MemoryStore) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

// GetAllKeys: 정렬된 키 목록
func (s *MemoryStore) GetAllKeys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	keys := make([]string, 0, len(s.items))
	for key := range s.items {
		keys = append(keys, key)
	}
	s.mu.RUnlock()

	slices.Sort(keys)
	return keys, nil
}

func (s *MemoryStore) MultiRemove(_ context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.items, key)
	}
	return nil
}
