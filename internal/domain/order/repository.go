package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for orders.
// Create must persist the order and all its items atomically; a failed
// creation leaves no partial rows behind.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
	Save(ctx context.Context, o *Order) error
}
