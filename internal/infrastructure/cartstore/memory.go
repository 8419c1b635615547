package cartstore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/roastline/storefront/internal/domain/cart"
	"github.com/roastline/storefront/internal/domain/shared"
)

// MemoryStore implements cart.Store in process memory.
// Snapshots go through the same JSON encoding as the Redis store so both
// implementations agree on what survives a round trip.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[uuid.UUID][]byte
}

// NewMemoryStore creates an in-memory cart store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[uuid.UUID][]byte),
	}
}

// Load fetches the cart snapshot for the ID
func (s *MemoryStore) Load(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	s.mu.RLock()
	data, ok := s.snapshots[id]
	s.mu.RUnlock()

	if !ok {
		return nil, shared.ErrNotFound
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, shared.ErrCartCorrupted
	}
	return &c, nil
}

// Save writes the cart snapshot
func (s *MemoryStore) Save(ctx context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.snapshots[c.ID] = data
	s.mu.Unlock()
	return nil
}

// Delete removes the cart snapshot. Deleting an absent cart is a no-op.
func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	delete(s.snapshots, id)
	s.mu.Unlock()
	return nil
}

// Corrupt overwrites a snapshot with undecodable bytes. Test helper.
func (s *MemoryStore) Corrupt(id uuid.UUID) {
	s.mu.Lock()
	s.snapshots[id] = []byte("{not json")
	s.mu.Unlock()
}

var _ cart.Store = (*MemoryStore)(nil)
