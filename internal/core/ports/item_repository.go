package ports

import (
	"context"

	"courier/internal/core/domain/model/item"
)

// ItemRepository defines the persistence contract for item aggregates.
type ItemRepository interface {
	// NextID allocates the id for the next item: one past the largest stored
	// id, or 1 for an empty table. Concurrent callers inside transactions are
	// serialized until the allocating transaction ends.
	NextID(ctx context.Context) (int64, error)

	Add(ctx context.Context, aggregate *item.Item) error

	// Update writes state and receiving date in a single statement.
	Update(ctx context.Context, aggregate *item.Item) error

	// Get returns the item or errs.ErrObjectNotFound.
	Get(ctx context.Context, id int64) (*item.Item, error)

	// GetForUpdate is Get with the row locked until the transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*item.Item, error)

	// Find returns the items matching filter ordered by id. No match is an
	// empty slice, not an error.
	Find(ctx context.Context, filter item.Filter) ([]*item.Item, error)

	Delete(ctx context.Context, aggregate *item.Item) error
}
