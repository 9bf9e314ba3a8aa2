package commands

import (
	"context"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/ports"
)

// ReceiveItemCommandHandler moves an item from PendingReceiving to Received.
// The item row is locked, so of two concurrent receives exactly one wins and
// the other sees the Received state.
type ReceiveItemCommandHandler struct {
	uowFactory  ItemUoWFactory
	clock       ports.Clock
	transitDays int
}

func NewReceiveItemCommandHandler(uowFactory ItemUoWFactory, clock ports.Clock, transitDays int) ReceiveItemCommandHandler {
	return ReceiveItemCommandHandler{
		uowFactory:  uowFactory,
		clock:       clock,
		transitDays: transitDays,
	}
}

func (h *ReceiveItemCommandHandler) Handle(ctx context.Context, cmd ReceiveItemCommand) error {
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

	repo := uow.ItemRepository()
	parcel, err := repo.GetForUpdate(ctx, cmd.ItemID())
	if err != nil {
		return err
	}

	if err = parcel.Receive(cmd.Caller(), kernel.DateOf(h.clock.Now()), h.transitDays); err != nil {
		return err
	}

	if err = repo.Update(ctx, parcel); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
