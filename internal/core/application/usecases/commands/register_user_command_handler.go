package commands

import (
	"context"

	"courier/internal/core/domain/model/user"
)

// RegisterUserCommandHandler creates customer accounts with a zero balance.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewRegisterUserCommandHandler(uowFactory UserUoWFactory) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{uowFactory: uowFactory}
}

// Handle inserts the customer. A taken username surfaces as
// errs.ErrObjectAlreadyExists from the repository.
func (h *RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	customer, err := user.NewCustomer(cmd.Username(), cmd.Password(), cmd.Profile())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UserRepository().Add(ctx, customer); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
