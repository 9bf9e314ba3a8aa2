package commands_test

import (
	"errors"
	"testing"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/user"
	"courier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEnsureAdministratorCommand(t *testing.T) commands.EnsureAdministratorCommand {
	t.Helper()
	cmd, err := commands.NewEnsureAdministratorCommand("secret", user.Profile{
		Name:  commands.DefaultAdministratorName,
		Phone: commands.DefaultAdministratorPhone,
	})
	require.NoError(t, err)
	return cmd
}

func TestNewEnsureAdministratorCommand_PasswordRequired(t *testing.T) {
	_, err := commands.NewEnsureAdministratorCommand("", user.Profile{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestEnsureAdministratorCommandHandler_Handle_CreatesWhenMissing(t *testing.T) {
	ctx := t.Context()
	cmd := newEnsureAdministratorCommand(t)

	repo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, user.AdministratorUsername).
			Return(nil, errs.NewObjectNotFoundError("username", user.AdministratorUsername)).Once(),
		repo.On("Add", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
			return u.Username() == user.AdministratorUsername &&
				u.IsAdministrator() &&
				u.Name() == commands.DefaultAdministratorName &&
				u.Phone() == commands.DefaultAdministratorPhone
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewEnsureAdministratorCommandHandler(factory)
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, created)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestEnsureAdministratorCommandHandler_Handle_ExistingIsKept(t *testing.T) {
	ctx := t.Context()
	cmd := newEnsureAdministratorCommand(t)

	repo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, user.AdministratorUsername).Return(administrator(t, 42), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewEnsureAdministratorCommandHandler(factory)
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, created)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestEnsureAdministratorCommandHandler_Handle_ReservedNameHeldByCustomer(t *testing.T) {
	ctx := t.Context()
	impostor, err := user.RestoreUser(user.AdministratorUsername, "hash", user.Customer, 0, user.Profile{})
	require.NoError(t, err)

	repo := new(MockUserRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", mock.Anything, user.AdministratorUsername).Return(impostor, nil).Once()

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewEnsureAdministratorCommandHandler(factory)
	_, err = h.Handle(ctx, newEnsureAdministratorCommand(t))
	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestEnsureAdministratorCommandHandler_Handle_StorageError(t *testing.T) {
	ctx := t.Context()
	storageErr := errs.NewStorageError("get user", errors.New("connection refused"))

	repo := new(MockUserRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", mock.Anything, user.AdministratorUsername).Return(nil, storageErr).Once()

	factory := new(MockUserUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewEnsureAdministratorCommandHandler(factory)
	_, err := h.Handle(ctx, newEnsureAdministratorCommand(t))
	require.ErrorIs(t, err, errs.ErrStorage)
}
