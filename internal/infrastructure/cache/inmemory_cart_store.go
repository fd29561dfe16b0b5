package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/shopfront/backend/internal/domain/cart"
	"github.com/shopfront/backend/internal/domain/shared"
)

type cartEntry struct {
	data      []byte
	expiresAt time.Time
}

// InMemoryCartStore implements cart.Store using an in-process map.
// Suitable for single-instance deployments and testing. Carts are stored
// as JSON snapshots so callers never share mutable state with the store.
type InMemoryCartStore struct {
	mu      sync.RWMutex
	entries map[string]cartEntry
	ttl     time.Duration
}

// NewInMemoryCartStore creates an in-memory cart store
func NewInMemoryCartStore(ttl time.Duration) *InMemoryCartStore {
	return &InMemoryCartStore{
		entries: make(map[string]cartEntry),
		ttl:     ttl,
	}
}

// Find returns the cart for a session, or shared.ErrNotFound when the
// session has no cart or it has expired
func (s *InMemoryCartStore) Find(ctx context.Context, sessionID string) (*cart.Cart, error) {
	s.mu.RLock()
	entry, exists := s.entries[sessionID]
	s.mu.RUnlock()

	if !exists || time.Now().After(entry.expiresAt) {
		return nil, shared.ErrNotFound
	}

	var c cart.Cart
	if err := json.Unmarshal(entry.data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save persists the full cart snapshot and resets its TTL
func (s *InMemoryCartStore) Save(ctx context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entries[c.SessionID] = cartEntry{
		data:      data,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()
	return nil
}

// Delete removes the persisted cart for a session; no-op if absent
func (s *InMemoryCartStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()
	return nil
}

var _ cart.Store = (*InMemoryCartStore)(nil)
