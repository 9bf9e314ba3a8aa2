package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories it hands out
// run inside the transaction started by Begin, or directly against the
// database when no transaction is active.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit commits the transaction and then reports the tracked changes
	// to the commit hook, if one is configured.
	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	UserRepository() UserRepository
	ItemRepository() ItemRepository
}

// ChangeKind says what happened to a tracked aggregate.
type ChangeKind int

const (
	AggregateAdded ChangeKind = iota + 1
	AggregateUpdated
	AggregateRemoved
)

// AggregateChange is one aggregate write recorded during a unit of work.
type AggregateChange struct {
	Kind      ChangeKind
	Aggregate any
}

// CommitHook receives the changes of a successfully committed unit of work.
type CommitHook func(ctx context.Context, changes []AggregateChange)
