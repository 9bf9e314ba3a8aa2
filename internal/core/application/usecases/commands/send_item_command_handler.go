package commands

import (
	"context"
	"errors"

	"courier/internal/core/domain/model/item"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/user"
	"courier/internal/core/domain/services"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"
)

var ErrRecipientIsNotCustomer = errors.New("items can only be sent to customers")

// SendItemResult identifies the created item and what the sender paid.
type SendItemResult struct {
	ItemID int64
	Cost   int64
}

// SendItemCommandHandler charges the sender, credits the administrator and
// creates the item, all in one transaction.
//
// Business rules:
//   - the sender must be a customer
//   - the recipient must exist and be a customer
//   - cost is amount times the unit price of the category
//   - the sender's balance must cover the cost
type SendItemCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	ledger     services.Ledger
}

func NewSendItemCommandHandler(uowFactory UoWFactory, clock ports.Clock) SendItemCommandHandler {
	return SendItemCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		ledger:     services.NewLedger(),
	}
}

func (h *SendItemCommandHandler) Handle(ctx context.Context, cmd SendItemCommand) (SendItemResult, error) {
	if err := cmd.Validate(); err != nil {
		return SendItemResult{}, err
	}

	cost, err := item.Cost(cmd.Category(), cmd.Amount())
	if err != nil {
		return SendItemResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return SendItemResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()

	recipient, err := users.Get(ctx, cmd.Recipient())
	if err != nil {
		return SendItemResult{}, err
	}
	if recipient.IsAdministrator() {
		return SendItemResult{}, errs.NewValueIsInvalidErrorWithCause("recipient", ErrRecipientIsNotCustomer)
	}

	locked, err := lockUsers(ctx, users, cmd.Sender(), user.AdministratorUsername)
	if err != nil {
		return SendItemResult{}, err
	}
	sender, admin := locked[cmd.Sender()], locked[user.AdministratorUsername]

	if sender.IsAdministrator() {
		return SendItemResult{}, errs.NewForbiddenError(cmd.Sender(), "send items")
	}

	if err = h.ledger.Transfer(sender, admin, cost); err != nil {
		return SendItemResult{}, err
	}

	if err = users.Update(ctx, sender); err != nil {
		return SendItemResult{}, err
	}
	if err = users.Update(ctx, admin); err != nil {
		return SendItemResult{}, err
	}

	items := uow.ItemRepository()
	id, err := items.NextID(ctx)
	if err != nil {
		return SendItemResult{}, err
	}

	parcel, err := item.NewItem(
		id,
		cmd.Category(),
		cmd.Amount(),
		cmd.Sender(),
		cmd.Recipient(),
		cmd.Description(),
		kernel.DateOf(h.clock.Now()),
	)
	if err != nil {
		return SendItemResult{}, err
	}

	if err = items.Add(ctx, parcel); err != nil {
		return SendItemResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SendItemResult{}, err
	}

	return SendItemResult{ItemID: id, Cost: cost}, nil
}
