package cache

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"time"
)

type memoryConfig struct {
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	maxEntries      int
}

type memoryEntry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

func (e *memoryEntry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory is an in-process cache. When MaxEntries is set the least recently
// used entry is evicted on overflow.
type Memory[V any] struct {
	cfg    memoryConfig
	mu     sync.Mutex
	items  map[string]*list.Element
	lru    *list.List
	done   chan struct{}
	closed bool
}

// MemoryOption configures a Memory cache.
type MemoryOption func(*memoryConfig)

// WithDefaultTTL sets the TTL used when Set gets zero. Default: 1 hour.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(c *memoryConfig) { c.defaultTTL = d }
}

// WithCleanupInterval sets how often expired entries are purged.
// Zero disables the background purge. Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(c *memoryConfig) { c.cleanupInterval = d }
}

// WithMaxEntries bounds the number of entries. Zero means unlimited.
func WithMaxEntries(n int) MemoryOption {
	return func(c *memoryConfig) { c.maxEntries = n }
}

// NewMemory creates an in-memory cache.
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	cfg := memoryConfig{defaultTTL: time.Hour, cleanupInterval: time.Minute}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Memory[V]{
		cfg:   cfg,
		items: make(map[string]*list.Element),
		lru:   list.New(),
		done:  make(chan struct{}),
	}
	if cfg.cleanupInterval > 0 {
		go m.janitor()
	}
	return m
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	el, ok := m.items[key]
	if !ok {
		return zero, ErrNotFound
	}
	e := el.Value.(*memoryEntry[V])
	if e.expired(time.Now()) {
		m.remove(el)
		return zero, ErrNotFound
	}
	m.lru.MoveToFront(el)
	return e.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if ttl == 0 {
		ttl = m.cfg.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	if el, ok := m.items[key]; ok {
		e := el.Value.(*memoryEntry[V])
		e.value, e.expiresAt = value, expiresAt
		m.lru.MoveToFront(el)
		return nil
	}
	if m.cfg.maxEntries > 0 && len(m.items) >= m.cfg.maxEntries {
		if last := m.lru.Back(); last != nil {
			m.remove(last)
		}
	}
	m.items[key] = m.lru.PushFront(&memoryEntry[V]{key: key, value: value, expiresAt: expiresAt})
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if el, ok := m.items[key]; ok {
		m.remove(el)
	}
	return nil
}

func (m *Memory[V]) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	for key, el := range m.items {
		if strings.HasPrefix(key, prefix) {
			m.remove(el)
		}
	}
	return nil
}

func (m *Memory[V]) Has(ctx context.Context, key string) (bool, error) {
	_, err := m.Get(ctx, key)
	return err == nil, nil
}

func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.items = make(map[string]*list.Element)
	m.lru.Init()
	return nil
}

// Len returns the number of entries, expired ones included until purged.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close stops the janitor. It is idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

func (m *Memory[V]) janitor() {
	ticker := time.NewTicker(m.cfg.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for el := m.lru.Back(); el != nil; {
				prev := el.Prev()
				if el.Value.(*memoryEntry[V]).expired(now) {
					m.remove(el)
				}
				el = prev
			}
			m.mu.Unlock()
		}
	}
}

// remove must be called with mu held.
func (m *Memory[V]) remove(el *list.Element) {
	m.lru.Remove(el)
	delete(m.items, el.Value.(*memoryEntry[V]).key)
}

var _ Cache[any] = (*Memory[any])(nil)
