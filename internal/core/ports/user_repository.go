// Package ports defines the contracts between the courier domain and its
// infrastructure: repositories, the unit of work, session storage, event
// publishing and the waybill archive.
package ports

import (
	"context"

	"courier/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user aggregates.
type UserRepository interface {
	// Add inserts a new user. A taken username yields errs.ErrObjectAlreadyExists.
	Add(ctx context.Context, aggregate *user.User) error

	// Update writes the mutable fields of an existing user: password and balance.
	Update(ctx context.Context, aggregate *user.User) error

	// Get returns the user or errs.ErrObjectNotFound.
	Get(ctx context.Context, username string) (*user.User, error)

	// GetForUpdate is Get with the row locked until the transaction ends.
	GetForUpdate(ctx context.Context, username string) (*user.User, error)
}
