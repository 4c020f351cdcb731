package mem

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLStore is a mutex guarded map whose entries expire after a fixed ttl.
// Expired entries are dropped lazily on access and swept on Set.
type TTLStore[V any] struct {
	mu   sync.RWMutex
	data map[string]entry[V]
	ttl  time.Duration
	now  func() time.Time
}

func NewTTLStore[V any](ttl time.Duration) *TTLStore[V] {
	return &TTLStore[V]{
		data: make(map[string]entry[V]),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *TTLStore[V]) Set(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
		}
	}
	s.data[key] = entry[V]{
		value:     value,
		expiresAt: now.Add(s.ttl),
	}
}

// Get returns the value for key if present and not expired. A hit refreshes
// the expiry.
func (s *TTLStore[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	e, ok := s.data[key]
	if !ok {
		return zero, false
	}
	now := s.now()
	if now.After(e.expiresAt) {
		delete(s.data, key)
		return zero, false
	}
	e.expiresAt = now.Add(s.ttl)
	s.data[key] = e
	return e.value, true
}

// Peek reads without touching the expiry.
func (s *TTLStore[V]) Peek(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero V
	e, ok := s.data[key]
	if !ok || s.now().After(e.expiresAt) {
		return zero, false
	}
	return e.value, true
}

// Delete removes key and reports whether a live entry was there.
func (s *TTLStore[V]) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	delete(s.data, key)
	return ok && !s.now().After(e.expiresAt)
}

func (s *TTLStore[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
