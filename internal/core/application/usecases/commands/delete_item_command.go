package commands

import (
	"errors"

	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var ErrDeleteItemCommandIsNotConstructed = errors.New(
	"DeleteItemCommand must be created via NewDeleteItemCommand constructor",
)

// DeleteItemCommand removes an item record. Only the administrator may do it.
type DeleteItemCommand struct { //nolint:recvcheck //using for validation
	actor  string
	itemID int64

	guard guard.ConstructorGuard
}

func NewDeleteItemCommand(actor string, itemID int64) (DeleteItemCommand, error) {
	var errList []error
	if actor == "" {
		errList = append(errList, errs.NewValueIsRequiredError("actor"))
	}
	if itemID <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("item id", itemID, 1, "max int64"))
	}
	if err := errors.Join(errList...); err != nil {
		return DeleteItemCommand{}, err
	}

	return DeleteItemCommand{
		actor:  actor,
		itemID: itemID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteItemCommand) Validate() error {
	return c.guard.Validate(ErrDeleteItemCommandIsNotConstructed)
}

func (c DeleteItemCommand) Actor() string { return c.actor }
func (c DeleteItemCommand) ItemID() int64 { return c.itemID }
