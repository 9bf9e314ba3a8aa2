package commands

import (
	"errors"

	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var ErrReceiveItemCommandIsNotConstructed = errors.New(
	"ReceiveItemCommand must be created via NewReceiveItemCommand constructor",
)

// ReceiveItemCommand is the recipient signing for an item.
type ReceiveItemCommand struct { //nolint:recvcheck //using for validation
	caller string
	itemID int64

	guard guard.ConstructorGuard
}

func NewReceiveItemCommand(caller string, itemID int64) (ReceiveItemCommand, error) {
	var errList []error
	if caller == "" {
		errList = append(errList, errs.NewValueIsRequiredError("caller"))
	}
	if itemID <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("item id", itemID, 1, "max int64"))
	}
	if err := errors.Join(errList...); err != nil {
		return ReceiveItemCommand{}, err
	}

	return ReceiveItemCommand{
		caller: caller,
		itemID: itemID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c ReceiveItemCommand) Validate() error {
	return c.guard.Validate(ErrReceiveItemCommandIsNotConstructed)
}

func (c ReceiveItemCommand) Caller() string { return c.caller }
func (c ReceiveItemCommand) ItemID() int64  { return c.itemID }
