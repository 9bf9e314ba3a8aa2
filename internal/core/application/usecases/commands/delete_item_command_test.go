package commands_test

import (
	"testing"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/user"
	"courier/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteItemCommandHandler_Handle_Administrator(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewDeleteItemCommand(user.AdministratorUsername, 3)
	parcel := pendingItem(t)

	users := new(MockUserRepository)
	items := new(MockItemRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Get", mock.Anything, user.AdministratorUsername).Return(administrator(t, 0), nil).Once(),
		uow.On("ItemRepository").Return(items).Once(),
		items.On("GetForUpdate", mock.Anything, int64(3)).Return(parcel, nil).Once(),
		items.On("Delete", mock.Anything, parcel).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteItemCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	items.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeleteItemCommandHandler_Handle_CustomerIsForbidden(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewDeleteItemCommand("alice", 3)

	users := new(MockUserRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(users).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	users.On("Get", mock.Anything, "alice").Return(customer(t, "alice", 0), nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteItemCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrForbidden)
	uow.AssertNotCalled(t, "ItemRepository")
}
