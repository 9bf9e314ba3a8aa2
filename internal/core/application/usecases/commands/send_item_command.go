package commands

import (
	"errors"

	"courier/internal/core/domain/model/item"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var (
	ErrSendItemCommandIsNotConstructed = errors.New(
		"SendItemCommand must be created via NewSendItemCommand constructor",
	)
	ErrCannotSendToSelf = errors.New("sender and recipient must differ")
)

// SendItemCommand represents a customer shipping amount units of a category
// to another customer.
//
// Example:
//
//	cmd, err := NewSendItemCommand("alice", "bob", item.Normal, 2, "box")
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	// result.Cost == 2 * item.NormalUnitPrice
type SendItemCommand struct { //nolint:recvcheck //using for validation
	sender      string
	recipient   string
	category    item.Category
	amount      int64
	description string

	guard guard.ConstructorGuard
}

func NewSendItemCommand(
	sender, recipient string,
	category item.Category,
	amount int64,
	description string,
) (SendItemCommand, error) {
	cmd := SendItemCommand{
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParties(sender, recipient),
		cmd.setShipment(category, amount),
	); err != nil {
		return SendItemCommand{}, err
	}

	return cmd, nil
}

func (c SendItemCommand) Validate() error {
	return c.guard.Validate(ErrSendItemCommandIsNotConstructed)
}

func (c SendItemCommand) Sender() string          { return c.sender }
func (c SendItemCommand) Recipient() string       { return c.recipient }
func (c SendItemCommand) Category() item.Category { return c.category }
func (c SendItemCommand) Amount() int64           { return c.amount }
func (c SendItemCommand) Description() string     { return c.description }

func (c *SendItemCommand) setParties(sender, recipient string) error {
	if sender == "" {
		return errs.NewValueIsRequiredError("sender")
	}
	if recipient == "" {
		return errs.NewValueIsRequiredError("recipient")
	}
	if sender == recipient {
		return errs.NewValueIsInvalidErrorWithCause("recipient", ErrCannotSendToSelf)
	}

	c.sender = sender
	c.recipient = recipient
	return nil
}

func (c *SendItemCommand) setShipment(category item.Category, amount int64) error {
	if _, err := item.Cost(category, amount); err != nil {
		return err
	}

	c.category = category
	c.amount = amount
	return nil
}
