package identity

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence port for admin accounts
type Repository interface {
	// FindByID retrieves an admin by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Admin, error)

	// FindByUsername retrieves an admin by username (case-insensitive)
	FindByUsername(ctx context.Context, username string) (*Admin, error)

	// Save persists an admin account
	Save(ctx context.Context, a *Admin) error

	// ExistsByUsername checks if a username is already taken
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
