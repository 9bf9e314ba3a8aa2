package commands

import (
	"context"
	"fmt"

	"courier/internal/pkg/errs"
)

type DeleteItemCommandHandler struct {
	uowFactory UoWFactory
}

func NewDeleteItemCommandHandler(uowFactory UoWFactory) DeleteItemCommandHandler {
	return DeleteItemCommandHandler{uowFactory: uowFactory}
}

// Handle deletes the item. Balances are not refunded.
func (h *DeleteItemCommandHandler) Handle(ctx context.Context, cmd DeleteItemCommand) error {
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

	actor, err := uow.UserRepository().Get(ctx, cmd.Actor())
	if err != nil {
		return err
	}
	if !actor.IsAdministrator() {
		return errs.NewForbiddenError(cmd.Actor(), fmt.Sprintf("delete item %d", cmd.ItemID()))
	}

	items := uow.ItemRepository()
	parcel, err := items.GetForUpdate(ctx, cmd.ItemID())
	if err != nil {
		return err
	}

	if err = items.Delete(ctx, parcel); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
