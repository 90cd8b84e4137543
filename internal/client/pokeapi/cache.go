package pokeapi

import (
	"container/list"
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCacheMiss = errors.New("cache miss")

// Cache stores raw response bodies by request path.
type Cache interface {
	// Get returns ErrCacheMiss for an absent or expired key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// MemoryCache is an in-process LRU with per-entry expiry.
type MemoryCache struct {
	maxSize int
	now     func() time.Time

	mu    sync.Mutex
	items map[string]*list.Element
	lru   *list.List
}

type memEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = 512
	}
	return &MemoryCache{
		maxSize: maxSize,
		now:     time.Now,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.items[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	e := el.Value.(*memEntry)
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		m.lru.Remove(el)
		delete(m.items, key)
		return nil, ErrCacheMiss
	}
	m.lru.MoveToFront(el)
	return e.value, nil
}

// Set stores value; ttl <= 0 means no expiry.
func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var exp time.Time
	if ttl > 0 {
		exp = m.now().Add(ttl)
	}
	if el, ok := m.items[key]; ok {
		e := el.Value.(*memEntry)
		e.value, e.expiresAt = value, exp
		m.lru.MoveToFront(el)
		return nil
	}

	m.items[key] = m.lru.PushFront(&memEntry{key: key, value: value, expiresAt: exp})
	if m.lru.Len() > m.maxSize {
		oldest := m.lru.Back()
		m.lru.Remove(oldest)
		delete(m.items, oldest.Value.(*memEntry).key)
	}
	return nil
}

func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Len()
}
