package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "courier/internal/adapters/out/postgres"
	"courier/internal/core/domain/model/item"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/user"
	"courier/internal/core/domain/services"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres_adapter.GormUnitOfWorkFactory
	committed [][]ports.AggregateChange
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	suite.Require().NoError(postgres_adapter.MigrateUp(dsn))
	// A second run finds nothing to apply.
	suite.Require().NoError(postgres_adapter.MigrateUp(dsn))

	db, err := postgres_adapter.Open(ctx, dsn)
	suite.Require().NoError(err)
	suite.db = db

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db,
		postgres_adapter.WithCommitHook(func(_ context.Context, changes []ports.AggregateChange) {
			suite.committed = append(suite.committed, changes)
		}),
	)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE items, users").Error)
	suite.committed = nil
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) customer(username string, balance int64) *user.User {
	u, err := user.NewCustomer(username, "pw", user.Profile{})
	suite.Require().NoError(err)
	suite.Require().NoError(u.AdjustBalance(balance))
	return u
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second Begin does not nest")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().Error(uow.Commit(ctx), "commit without transaction")
	suite.Require().Error(uow.Rollback(ctx), "rollback without transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAndCallsHook() {
	ctx := context.Background()
	alice := suite.customer("alice", 0)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.UserRepository().Add(ctx, alice))
	suite.Require().NoError(uow.Commit(ctx))

	_, err := suite.factory.Create().UserRepository().Get(ctx, "alice")
	suite.Require().NoError(err)

	suite.Require().Len(suite.committed, 1)
	suite.Require().Len(suite.committed[0], 1)
	suite.Equal(ports.AggregateAdded, suite.committed[0][0].Kind)
	suite.Same(alice, suite.committed[0][0].Aggregate)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWritesAndSkipsHook() {
	ctx := context.Background()

	uow := suite.factory.CreateGorm()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.UserRepository().Add(ctx, suite.customer("alice", 0)))
	suite.Len(uow.TrackedChanges(), 1)
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().UserRepository().Get(ctx, "alice")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Empty(uow.TrackedChanges())
	suite.Empty(suite.committed)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransferAndItemInsert_AreAtomic() {
	ctx := context.Background()
	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.UserRepository().Add(ctx, suite.customer("alice", 100)))
	suite.Require().NoError(setup.UserRepository().Add(ctx, suite.customer("bob", 0)))
	suite.Require().NoError(setup.Commit(ctx))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	users := uow.UserRepository()
	alice, err := users.GetForUpdate(ctx, "alice")
	suite.Require().NoError(err)
	bob, err := users.GetForUpdate(ctx, "bob")
	suite.Require().NoError(err)
	suite.Require().NoError(services.NewLedger().Transfer(alice, bob, 40))
	suite.Require().NoError(users.Update(ctx, alice))
	suite.Require().NoError(users.Update(ctx, bob))

	// The item insert fails on the foreign key, so the transfer must not survive.
	sent, err := kernel.NewDate(2024, 1, 1)
	suite.Require().NoError(err)
	orphan, err := item.NewItem(1, item.Book, 1, "alice", "ghost", "", sent)
	suite.Require().NoError(err)
	suite.Require().Error(uow.ItemRepository().Add(ctx, orphan))
	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create().UserRepository()
	alice, err = reader.Get(ctx, "alice")
	suite.Require().NoError(err)
	bob, err = reader.Get(ctx, "bob")
	suite.Require().NoError(err)
	suite.Equal(int64(100), alice.Balance())
	suite.Equal(int64(0), bob.Balance())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
