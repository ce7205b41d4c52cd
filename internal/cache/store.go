package cache

import (
	"encoding/json"
	"errors"
	"sync"
	"time"
)

// Lookup failures.
var (
	ErrCacheNotFound   = errors.New("cache entry not found")
	ErrCacheExpired    = errors.New("cache entry expired")
	ErrInvalidCacheKey = errors.New("cache key cannot be empty")
)

// Store is the cache contract used by the valuation layer.
type Store interface {
	// Get returns a live entry, ErrCacheNotFound or ErrCacheExpired.
	Get(key string) (*Entry, error)
	// GetStale returns the entry even when it has expired.
	GetStale(key string) (*Entry, error)
	// Set stores data under key with the store TTL.
	Set(key string, data json.RawMessage) error
	// Prune drops entries expired for longer than grace and reports how
	// many went.
	Prune(grace time.Duration) (int, error)
}

// StoreOption configures a store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	now func() time.Time
}

// WithClock overrides the store clock.
func WithClock(now func() time.Time) StoreOption {
	return func(o *storeOptions) { o.now = now }
}

func applyStoreOptions(opts []StoreOption) storeOptions {
	o := storeOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// orDefaultTTL maps a non-positive ttl to the default quote lifetime.
func orDefaultTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTLConfig().Duration
	}
	return ttl
}

// MemoryStore keeps quotes for the life of the process. Safe for
// concurrent use.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewMemoryStore returns an empty store whose entries live for ttl.
// A non-positive ttl means DefaultTTLSeconds.
func NewMemoryStore(ttl time.Duration, opts ...StoreOption) *MemoryStore {
	o := applyStoreOptions(opts)
	return &MemoryStore{
		ttl:     orDefaultTTL(ttl),
		now:     o.now,
		entries: map[string]*Entry{},
	}
}

// TTL returns the entry lifetime.
func (s *MemoryStore) TTL() time.Duration {
	return s.ttl
}

// Get returns a copy of the live entry for key.
func (s *MemoryStore) Get(key string) (*Entry, error) {
	e, err := s.GetStale(key)
	if err != nil {
		return nil, err
	}
	if e.ExpiredAt(s.now()) {
		return nil, ErrCacheExpired
	}
	return e, nil
}

// GetStale returns a copy of the entry for key regardless of expiry.
func (s *MemoryStore) GetStale(key string) (*Entry, error) {
	if key == "" {
		return nil, ErrInvalidCacheKey
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrCacheNotFound
	}
	cp := *e
	return &cp, nil
}

// Set stores a private copy of data under key.
func (s *MemoryStore) Set(key string, data json.RawMessage) error {
	if key == "" {
		return ErrInvalidCacheKey
	}
	e := NewEntry(key, append(json.RawMessage(nil), data...), s.ttl, s.now())

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return nil
}

// Prune never fails for the in-memory store.
func (s *MemoryStore) Prune(grace time.Duration) (int, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for k, e := range s.entries {
		if e.prunableAt(now, grace) {
			delete(s.entries, k)
			n++
		}
	}
	return n, nil
}

// Len returns the number of entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
