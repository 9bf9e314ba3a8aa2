package commands_test

import (
	"testing"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/item"
	"courier/internal/core/domain/model/user"
	"courier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewSendItemCommand(t *testing.T) {
	cmd, err := commands.NewSendItemCommand("alice", "bob", item.Book, 3, "novels")
	require.NoError(t, err)
	assert.Equal(t, "alice", cmd.Sender())
	assert.Equal(t, "bob", cmd.Recipient())
	assert.Equal(t, item.Book, cmd.Category())
	assert.Equal(t, int64(3), cmd.Amount())
	assert.Equal(t, "novels", cmd.Description())
}

func TestNewSendItemCommand_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		sender    string
		recipient string
		category  item.Category
		amount    int64
		want      error
	}{
		{"self", "alice", "alice", item.Normal, 1, commands.ErrCannotSendToSelf},
		{"no recipient", "alice", "", item.Normal, 1, errs.ErrValueIsRequired},
		{"unknown category", "alice", "bob", item.Category(9), 1, errs.ErrValueIsInvalid},
		{"zero amount", "alice", "bob", item.Normal, 0, errs.ErrValueIsOutOfRange},
		{"amount too large", "alice", "bob", item.Normal, item.MaxAmount + 1, errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewSendItemCommand(tt.sender, tt.recipient, tt.category, tt.amount, "")
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSendItemCommandHandler_Handle_Success(t *testing.T) {
	// Given
	ctx := t.Context()
	cmd, _ := commands.NewSendItemCommand("alice", "bob", item.Normal, 2, "box")
	alice := customer(t, "alice", 100)
	admin := administrator(t, 5)

	users := new(MockUserRepository)
	items := new(MockItemRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Get", mock.Anything, "bob").Return(customer(t, "bob", 0), nil).Once(),
		users.On("GetForUpdate", mock.Anything, user.AdministratorUsername).Return(admin, nil).Once(),
		users.On("GetForUpdate", mock.Anything, "alice").Return(alice, nil).Once(),
		users.On("Update", mock.Anything, alice).Return(nil).Once(),
		users.On("Update", mock.Anything, admin).Return(nil).Once(),
		uow.On("ItemRepository").Return(items).Once(),
		items.On("NextID", mock.Anything).Return(int64(7), nil).Once(),
		items.On("Add", mock.Anything, mock.MatchedBy(func(it *item.Item) bool {
			return it.ID() == 7 &&
				it.Cost() == 10 &&
				it.State() == item.PendingReceiving &&
				it.ReceivingDate() == nil &&
				it.Sender() == "alice" &&
				it.Recipient() == "bob" &&
				it.SendingDate().Equal(date(t, 2024, 3, 1))
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	// When
	h := commands.NewSendItemCommandHandler(factory, fixedClock(2024, 3, 1))
	result, err := h.Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	assert.Equal(t, commands.SendItemResult{ItemID: 7, Cost: 2 * item.NormalUnitPrice}, result)
	assert.Equal(t, int64(90), alice.Balance())
	assert.Equal(t, int64(15), admin.Balance())
	users.AssertExpectations(t)
	items.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSendItemCommandHandler_Handle_InsufficientBalance(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewSendItemCommand("alice", "bob", item.Fragile, 2, "")
	alice := customer(t, "alice", 15)
	admin := administrator(t, 0)

	users := new(MockUserRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(users).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	users.On("Get", mock.Anything, "bob").Return(customer(t, "bob", 0), nil).Once()
	users.On("GetForUpdate", mock.Anything, user.AdministratorUsername).Return(admin, nil).Once()
	users.On("GetForUpdate", mock.Anything, "alice").Return(alice, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSendItemCommandHandler(factory, fixedClock(2024, 3, 1))
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Equal(t, int64(15), alice.Balance())
	assert.Equal(t, int64(0), admin.Balance())
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "ItemRepository")
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestSendItemCommandHandler_Handle_RecipientMustBeCustomer(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewSendItemCommand("alice", user.AdministratorUsername, item.Book, 1, "")

	users := new(MockUserRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(users).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	users.On("Get", mock.Anything, user.AdministratorUsername).Return(administrator(t, 0), nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSendItemCommandHandler(factory, fixedClock(2024, 3, 1))
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrRecipientIsNotCustomer)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	users.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
}

func TestSendItemCommandHandler_Handle_UnknownRecipient(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewSendItemCommand("alice", "ghost", item.Book, 1, "")

	users := new(MockUserRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(users).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	users.On("Get", mock.Anything, "ghost").Return(nil, errs.NewObjectNotFoundError("username", "ghost")).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSendItemCommandHandler(factory, fixedClock(2024, 3, 1))
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestSendItemCommandHandler_Handle_AddFailureRollsBack(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewSendItemCommand("alice", "bob", item.Book, 1, "")

	users := new(MockUserRepository)
	items := new(MockItemRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(users).Once()
	uow.On("ItemRepository").Return(items).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	users.On("Get", mock.Anything, "bob").Return(customer(t, "bob", 0), nil).Once()
	users.On("GetForUpdate", mock.Anything, user.AdministratorUsername).Return(administrator(t, 0), nil).Once()
	users.On("GetForUpdate", mock.Anything, "alice").Return(customer(t, "alice", 10), nil).Once()
	users.On("Update", mock.Anything, mock.Anything).Return(nil).Twice()
	items.On("NextID", mock.Anything).Return(int64(1), nil).Once()
	items.On("Add", mock.Anything, mock.Anything).Return(errs.NewStorageError("insert item", nil)).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSendItemCommandHandler(factory, fixedClock(2024, 3, 1))
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrStorage)
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertCalled(t, "Rollback", ctx)
}
