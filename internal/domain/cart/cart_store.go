package cart

import "context"

// Store persists cart snapshots keyed by session. Implementations must
// make a completed Save visible to a subsequent Find within the same
// process (read-after-write). How the snapshot is stored is outside the
// domain's concern.
type Store interface {
	// Find returns the cart for a session, or shared.ErrNotFound if the
	// session has no persisted cart.
	Find(ctx context.Context, sessionID string) (*Cart, error)

	// Save persists the full cart snapshot for its session
	Save(ctx context.Context, c *Cart) error

	// Delete removes the persisted cart for a session; no-op if absent
	Delete(ctx context.Context, sessionID string) error
}
