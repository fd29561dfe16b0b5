package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
)

// Repository defines the persistence port for orders
type Repository interface {
	// FindByID retrieves an order with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindAll retrieves orders filtered and paginated, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]*Order, error)

	// FindByStatus retrieves orders with the given status, newest first
	FindByStatus(ctx context.Context, status Status, filter shared.Filter) ([]*Order, error)

	// CreateFromSubmission atomically validates stock, decrements it and
	// persists a new pending order with snapshot lines. The involved
	// product rows stay locked until the transaction commits.
	CreateFromSubmission(ctx context.Context, sub Submission) (*Order, error)

	// Save persists order mutations
	Save(ctx context.Context, o *Order) error

	// SaveWithLock persists an order using optimistic locking
	SaveWithLock(ctx context.Context, o *Order, expectedVersion int) error

	// Count returns the number of orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus returns the number of orders per status
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}
