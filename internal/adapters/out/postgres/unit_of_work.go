// Package postgres is the PostgreSQL store: connection setup, embedded schema
// migrations and a GORM based Unit of Work that hands out transaction bound
// user and item repositories.
//
// Typical command flow:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	sender, err := uow.UserRepository().GetForUpdate(ctx, "alice")
//	...
//	if err := uow.ItemRepository().Add(ctx, parcel); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit is a no-op that returns
// gorm.ErrInvalidTransaction, so the deferred call is always safe.
package postgres

import (
	"context"

	"courier/internal/adapters/out/postgres/itemrepo"
	"courier/internal/adapters/out/postgres/userrepo"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db         *gorm.DB
	commitHook ports.CommitHook
}

// Option configures the factory.
type Option func(*GormUnitOfWorkFactory)

// WithCommitHook sets the function that receives tracked changes after every
// successful commit.
func WithCommitHook(hook ports.CommitHook) Option {
	return func(f *GormUnitOfWorkFactory) {
		f.commitHook = hook
	}
}

func NewGormUnitOfWorkFactory(db *gorm.DB, opts ...Option) *GormUnitOfWorkFactory {
	f := &GormUnitOfWorkFactory{db: db}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm returns the concrete type for callers that need TrackedChanges.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:         f.db,
		commitHook: f.commitHook,
	}
}

// GormUnitOfWork coordinates one database transaction and records every
// aggregate written through its repositories.
type GormUnitOfWork struct {
	db         *gorm.DB
	tx         *gorm.DB
	changes    []ports.AggregateChange
	commitHook ports.CommitHook
}

// Begin starts the transaction. Calling it twice does not nest.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errs.NewStorageError("begin transaction", tx.Error)
	}

	uow.tx = tx
	uow.changes = nil
	return nil
}

// Commit commits and, on success, hands the tracked changes to the commit hook.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.changes = nil
		return errs.NewStorageError("commit transaction", err)
	}

	if uow.commitHook != nil && len(uow.changes) > 0 {
		uow.commitHook(ctx, uow.TrackedChanges())
	}
	return nil
}

// Rollback discards the transaction and the tracked changes.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.changes = nil
	return err
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ItemRepository() ports.ItemRepository {
	return itemrepo.NewGormItemRepository(uow.conn(), uow)
}

// TrackAggregate is called by repositories for every successful write.
func (uow *GormUnitOfWork) TrackAggregate(kind ports.ChangeKind, aggregate any) {
	uow.changes = append(uow.changes, ports.AggregateChange{
		Kind:      kind,
		Aggregate: aggregate,
	})
}

// TrackedChanges returns a copy of the changes recorded so far.
func (uow *GormUnitOfWork) TrackedChanges() []ports.AggregateChange {
	out := make([]ports.AggregateChange, len(uow.changes))
	copy(out, uow.changes)
	return out
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
