// Package cache: 프로세스 내부에서 쓰는 작은 TTL 캐시.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// TTLLRUCache: TTL 기반 LRU 캐시입니다. nil 캐시는 항상 미스입니다.
type TTLLRUCache[V any] struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
	items      map[string]*list.Element
	order      *list.List
}

type ttlLRUEntry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// NewTTLLRUCache: TTL LRU 캐시를 생성합니다. 크기나 TTL 이 0 이하면 nil(캐시 비활성)을 반환합니다.
func NewTTLLRUCache[V any](maxEntries int, ttl time.Duration) *TTLLRUCache[V] {
	if maxEntries <= 0 || ttl <= 0 {
		return nil
	}
	return &TTLLRUCache[V]{
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
		items:      make(map[string]*list.Element, maxEntries),
		order:      list.New(),
	}
}

// SetClock: 만료 판정에 쓰는 시계를 교체합니다. (테스트용)
func (c *TTLLRUCache[V]) SetClock(now func() time.Time) {
	if c == nil || now == nil {
		return
	}
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

// Get: 캐시에서 값을 조회합니다.
func (c *TTLLRUCache[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}

	entry := elem.Value.(ttlLRUEntry[V])
	if !entry.expiresAt.After(c.now()) {
		c.removeElement(elem)
		return zero, false
	}

	c.order.MoveToFront(elem)
	return entry.value, true
}

// Set: 캐시에 값을 저장합니다.
func (c *TTLLRUCache[V]) Set(key string, value V) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry := ttlLRUEntry[V]{
		key:       key,
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value = entry
		return
	}

	c.items[key] = c.order.PushFront(entry)

	for len(c.items) > c.maxEntries {
		back := c.order.Back()
		if back == nil {
			break
		}
		c.removeElement(back)
	}
}

// Len: 저장된 항목 수 (만료 여부와 무관)
func (c *TTLLRUCache[V]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *TTLLRUCache[V]) removeElement(elem *list.Element) {
	entry := elem.Value.(ttlLRUEntry[V])
	delete(c.items, entry.key)
	c.order.Remove(elem)
}
