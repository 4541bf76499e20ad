package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/JonMunkholm/fakedata/internal/records"
)

// DefaultMaxEntries bounds the memory cache when no limit is configured.
const DefaultMaxEntries = 256

// Memory is an in-process cache with a TTL and a max entry count.
// When full, the oldest inserted entry is evicted.
type Memory struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List
}

type memoryEntry struct {
	key     string
	recs    []records.Record
	expires time.Time
}

// NewMemory creates a memory cache. A ttl <= 0 means entries never expire.
func NewMemory(ttl time.Duration, maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Memory{
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		entries:    make(map[string]*list.Element),
		order:      list.New(),
	}
}

// Get returns a copy of the cached records.
func (m *Memory) Get(_ context.Context, key string) ([]records.Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}

	e := el.Value.(*memoryEntry)
	if !e.expires.IsZero() && m.now().After(e.expires) {
		m.removeElement(el)
		return nil, false, nil
	}

	out := make([]records.Record, len(e.recs))
	copy(out, e.recs)
	return out, true, nil
}

// Set stores a copy of recs under key.
func (m *Memory) Set(_ context.Context, key string, recs []records.Record) error {
	stored := make([]records.Record, len(recs))
	copy(stored, recs)

	var expires time.Time
	if m.ttl > 0 {
		expires = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.entries[key]; ok {
		m.removeElement(el)
	}
	for m.order.Len() >= m.maxEntries {
		m.removeElement(m.order.Front())
	}

	m.entries[key] = m.order.PushBack(&memoryEntry{key: key, recs: stored, expires: expires})
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

func (m *Memory) removeElement(el *list.Element) {
	e := m.order.Remove(el).(*memoryEntry)
	delete(m.entries, e.key)
}
