package commands_test

import (
	"context"
	"testing"
	"time"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/item"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/user"
	"courier/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetForUpdate(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type MockItemRepository struct{ mock.Mock }

func (m *MockItemRepository) NextID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) Add(ctx context.Context, it *item.Item) error {
	return m.Called(ctx, it).Error(0)
}

func (m *MockItemRepository) Update(ctx context.Context, it *item.Item) error {
	return m.Called(ctx, it).Error(0)
}

func (m *MockItemRepository) Get(ctx context.Context, id int64) (*item.Item, error) {
	args := m.Called(ctx, id)
	it, _ := args.Get(0).(*item.Item)
	return it, args.Error(1)
}

func (m *MockItemRepository) GetForUpdate(ctx context.Context, id int64) (*item.Item, error) {
	args := m.Called(ctx, id)
	it, _ := args.Get(0).(*item.Item)
	return it, args.Error(1)
}

func (m *MockItemRepository) Find(ctx context.Context, filter item.Filter) ([]*item.Item, error) {
	args := m.Called(ctx, filter)
	items, _ := args.Get(0).([]*item.Item)
	return items, args.Error(1)
}

func (m *MockItemRepository) Delete(ctx context.Context, it *item.Item) error {
	return m.Called(ctx, it).Error(0)
}

// MockUoW satisfies UoW, UserUoW and ItemUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) UserRepository() ports.UserRepository {
	return m.Called().Get(0).(ports.UserRepository)
}

func (m *MockUoW) ItemRepository() ports.ItemRepository {
	return m.Called().Get(0).(ports.ItemRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	return m.Called().Get(0).(commands.UserUoW)
}

type MockItemUoWFactory struct{ mock.Mock }

func (m *MockItemUoWFactory) Create() commands.ItemUoW {
	return m.Called().Get(0).(commands.ItemUoW)
}

func customer(t *testing.T, username string, balance int64) *user.User {
	t.Helper()
	u, err := user.RestoreUser(username, "hash", user.Customer, balance, user.Profile{})
	require.NoError(t, err)
	return u
}

func administrator(t *testing.T, balance int64) *user.User {
	t.Helper()
	u, err := user.RestoreUser(user.AdministratorUsername, "hash", user.Administrator, balance, user.Profile{})
	require.NoError(t, err)
	return u
}

func date(t *testing.T, y, m, d int) kernel.Date {
	t.Helper()
	dt, err := kernel.NewDate(y, m, d)
	require.NoError(t, err)
	return dt
}

func fixedClock(y, m, d int) ports.Clock {
	return ports.ClockFunc(func() time.Time {
		return time.Date(y, time.Month(m), d, 15, 30, 0, 0, time.UTC)
	})
}
