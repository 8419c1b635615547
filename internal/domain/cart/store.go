package cart

import (
	"context"

	"github.com/google/uuid"
)

// Store is the durable snapshot capability for carts.
// Implementations persist the full cart as one record under a fixed key
// namespace; the round trip must be lossless for every Line field.
//
// Load returns shared.ErrNotFound for an unknown cart and
// shared.ErrCartCorrupted for a snapshot that cannot be decoded; callers
// degrade both to an empty cart rather than failing the session.
//
// The store offers no cross-session coordination: two sessions writing the
// same key is a last-write-wins race.
type Store interface {
	Load(ctx context.Context, id uuid.UUID) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, id uuid.UUID) error
}
