package item

import (
	"errors"
	"fmt"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

// Item is a parcel sent by one customer to another.
//
// A valid Item satisfies:
//   - id is positive and assigned by the store
//   - sender and recipient are set and differ
//   - a PendingReceiving item has no receiving date, a Received one has
type Item struct {
	id            int64
	cost          int64
	category      Category
	state         State
	sendingDate   kernel.Date
	receivingDate *kernel.Date
	sender        string
	recipient     string
	description   string

	isConstructed bool
}

// NewItem creates an item in PendingReceiving state sent on sendingDate.
// Cost is computed from category and amount.
func NewItem(
	id int64,
	category Category,
	amount int64,
	sender, recipient, description string,
	sendingDate kernel.Date,
) (*Item, error) {
	cost, err := Cost(category, amount)
	if err != nil {
		return nil, err
	}

	it := &Item{
		cost:          cost,
		category:      category,
		state:         PendingReceiving,
		description:   description,
		isConstructed: true,
	}

	if err = errors.Join(
		it.setID(id),
		it.setParties(sender, recipient),
		it.setSendingDate(sendingDate),
	); err != nil {
		return nil, err
	}

	return it, nil
}

// RestoreItem rehydrates an item from storage.
func RestoreItem(
	id, cost int64,
	category Category,
	state State,
	sendingDate kernel.Date,
	receivingDate *kernel.Date,
	sender, recipient, description string,
) (*Item, error) {
	it := &Item{
		category:      category,
		state:         state,
		receivingDate: receivingDate,
		description:   description,
		isConstructed: true,
	}

	if err := errors.Join(
		it.setID(id),
		it.setCost(cost),
		category.Validate(),
		state.Validate(),
		it.setParties(sender, recipient),
		it.setSendingDate(sendingDate),
	); err != nil {
		return nil, err
	}

	if (state == Received) != (receivingDate != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"receiving date",
			fmt.Errorf("item %d in state %s has receiving date set=%t", id, state, receivingDate != nil),
		)
	}

	return it, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() int64                   { return i.id }
func (i *Item) Cost() int64                 { return i.cost }
func (i *Item) Category() Category          { return i.category }
func (i *Item) State() State                { return i.state }
func (i *Item) SendingDate() kernel.Date    { return i.sendingDate }
func (i *Item) ReceivingDate() *kernel.Date { return i.receivingDate }
func (i *Item) Sender() string              { return i.sender }
func (i *Item) Recipient() string           { return i.recipient }
func (i *Item) Description() string         { return i.description }

// DueDate is the first day the item may be received.
func (i *Item) DueDate(transitDays int) kernel.Date {
	return i.sendingDate.AddDays(transitDays)
}

// IsVisibleTo reports whether username is a party to the item.
func (i *Item) IsVisibleTo(username string) bool {
	return i.sender == username || i.recipient == username
}

// Receive marks the item received by caller on today.
//
// Business rules:
//   - only the recipient may receive
//   - the item must still be PendingReceiving
//   - today must be on or after DueDate(transitDays)
func (i *Item) Receive(caller string, today kernel.Date, transitDays int) error {
	if caller != i.recipient {
		return errs.NewForbiddenError(caller, fmt.Sprintf("receive item %d", i.id))
	}
	if i.state != PendingReceiving {
		return errs.NewStateError(fmt.Sprintf("item %d", i.id), "is already received")
	}
	if due := i.DueDate(transitDays); today.Before(due) {
		return errs.NewStateError(fmt.Sprintf("item %d", i.id), "has not arrived yet, due "+due.String())
	}

	i.state = Received
	i.receivingDate = &today
	return nil
}

func (i *Item) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("id", id, 1, "max int64")
	}
	i.id = id
	return nil
}

func (i *Item) setCost(cost int64) error {
	if cost < 0 {
		return errs.NewValueIsOutOfRangeError("cost", cost, 0, "max int64")
	}
	i.cost = cost
	return nil
}

func (i *Item) setParties(sender, recipient string) error {
	if sender == "" {
		return errs.NewValueIsRequiredError("sender")
	}
	if recipient == "" {
		return errs.NewValueIsRequiredError("recipient")
	}
	if sender == recipient {
		return errs.NewValueIsInvalidErrorWithCause("recipient", errors.New("sender and recipient must differ"))
	}
	i.sender = sender
	i.recipient = recipient
	return nil
}

func (i *Item) setSendingDate(d kernel.Date) error {
	if err := d.Validate(); err != nil {
		return err
	}
	i.sendingDate = d
	return nil
}
