package commands

import (
	"context"

	"courier/internal/pkg/errs"
)

// AdjustBalanceCommandHandler applies a single-account balance change under a
// row lock. Range checks live in the user aggregate.
type AdjustBalanceCommandHandler struct {
	uowFactory UserUoWFactory
}

func NewAdjustBalanceCommandHandler(uowFactory UserUoWFactory) AdjustBalanceCommandHandler {
	return AdjustBalanceCommandHandler{uowFactory: uowFactory}
}

// Handle returns the balance after the change. On any error the stored
// balance is unchanged.
func (h *AdjustBalanceCommandHandler) Handle(ctx context.Context, cmd AdjustBalanceCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()

	if !cmd.IsSelf() {
		actor, err := repo.Get(ctx, cmd.Actor())
		if err != nil {
			return 0, err
		}
		if !actor.IsAdministrator() {
			return 0, errs.NewForbiddenError(cmd.Actor(), "adjust the balance of "+cmd.Target())
		}
	}

	target, err := repo.GetForUpdate(ctx, cmd.Target())
	if err != nil {
		return 0, err
	}

	if err = target.AdjustBalance(cmd.Delta()); err != nil {
		return 0, err
	}

	if err = repo.Update(ctx, target); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return target.Balance(), nil
}
