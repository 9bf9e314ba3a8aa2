package commands

import (
	"context"
)

type ChangePasswordCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewChangePasswordCommandHandler(uowFactory UserUoWFactory) ChangePasswordCommandHandler {
	return ChangePasswordCommandHandler{uowFactory: uowFactory}
}

// Handle rehashes and stores the new password. Live sessions stay valid.
func (h *ChangePasswordCommandHandler) Handle(ctx context.Context, cmd ChangePasswordCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()
	u, err := repo.GetForUpdate(ctx, cmd.Username())
	if err != nil {
		return err
	}

	if err = u.ChangePassword(cmd.NewPassword()); err != nil {
		return err
	}

	if err = repo.Update(ctx, u); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
