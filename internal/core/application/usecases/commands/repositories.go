// Package commands contains the operations that change users, balances and
// items. Every handler runs inside one unit of work: it begins a transaction,
// loads aggregates (row locked where they are mutated), applies domain rules
// and commits. A deferred Rollback undoes everything on any early return.
package commands

import (
	"context"

	"courier/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	ItemRepoFactory interface {
		ItemRepository() ports.ItemRepository
	}

	// UserUoW manages transactions that touch users only.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	// ItemUoW manages transactions that touch items only.
	ItemUoW interface {
		TxManager
		ItemRepoFactory
	}

	ItemUoWFactory interface {
		Create() ItemUoW
	}

	// UoW spans users and items, e.g. sending an item charges the sender and
	// inserts the item in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   users := uow.UserRepository()
	//   items := uow.ItemRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		UserRepoFactory
		ItemRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
