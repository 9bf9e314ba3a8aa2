package commands_test

import (
	"testing"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/user"
	"courier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAdjustBalanceCommand(t *testing.T) {
	cmd, err := commands.NewAdjustBalanceCommand("alice", "alice", -5)
	require.NoError(t, err)
	assert.True(t, cmd.IsSelf())
	assert.Equal(t, int64(-5), cmd.Delta())

	_, err = commands.NewAdjustBalanceCommand("", "alice", 1)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestAdjustBalanceCommandHandler_Handle_Self(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewAdjustBalanceCommand("alice", "alice", 250)

	repo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, "alice").Return(customer(t, "alice", 100), nil).Once(),
		repo.On("Update", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
			return u.Balance() == 350
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdjustBalanceCommandHandler(factory)
	balance, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, int64(350), balance)
	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestAdjustBalanceCommandHandler_Handle_OutOfRangeLeavesBalance(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		delta   int64
	}{
		{"negative result", 100, -101},
		{"above maximum", user.MaxBalance - 1, 2},
		{"delta too large", 0, user.MaxBalance + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			cmd, _ := commands.NewAdjustBalanceCommand("alice", "alice", tt.delta)
			alice := customer(t, "alice", tt.balance)

			repo := new(MockUserRepository)
			uow := new(MockUoW)
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("UserRepository").Return(repo).Once()
			uow.On("Rollback", ctx).Return(nil).Once()
			repo.On("GetForUpdate", mock.Anything, "alice").Return(alice, nil).Once()

			factory := new(MockUserUoWFactory)
			factory.On("Create").Return(uow).Once()

			h := commands.NewAdjustBalanceCommandHandler(factory)
			_, err := h.Handle(ctx, cmd)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			assert.Equal(t, tt.balance, alice.Balance())
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			uow.AssertNotCalled(t, "Commit", ctx)
		})
	}
}

func TestAdjustBalanceCommandHandler_Handle_AdministratorAdjustsOther(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewAdjustBalanceCommand(user.AdministratorUsername, "bob", 70)

	repo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, user.AdministratorUsername).Return(administrator(t, 0), nil).Once(),
		repo.On("GetForUpdate", mock.Anything, "bob").Return(customer(t, "bob", 30), nil).Once(),
		repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdjustBalanceCommandHandler(factory)
	balance, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)
	uow.AssertExpectations(t)
}

func TestAdjustBalanceCommandHandler_Handle_CustomerCannotAdjustOther(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewAdjustBalanceCommand("alice", "bob", 70)

	repo := new(MockUserRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", mock.Anything, "alice").Return(customer(t, "alice", 0), nil).Once()

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdjustBalanceCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrForbidden)
	repo.AssertNotCalled(t, "GetForUpdate", mock.Anything, "bob")
}
