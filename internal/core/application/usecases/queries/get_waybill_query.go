package queries

import (
	"errors"

	"courier/internal/core/domain/model/user"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var ErrGetWaybillQueryIsNotConstructed = errors.New(
	"GetWaybillQuery must be created via NewGetWaybillQuery constructor",
)

// GetWaybillQuery fetches the shipping document of one item. The sender, the
// recipient and the administrator may read it.
type GetWaybillQuery struct {
	caller     string
	callerRole user.Role
	itemID     int64

	guard guard.ConstructorGuard
}

func NewGetWaybillQuery(caller string, callerRole user.Role, itemID int64) (GetWaybillQuery, error) {
	var errList []error
	if caller == "" {
		errList = append(errList, errs.NewValueIsRequiredError("caller"))
	}
	if itemID <= 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("item id", itemID, 1, "max int64"))
	}
	errList = append(errList, callerRole.Validate())
	if err := errors.Join(errList...); err != nil {
		return GetWaybillQuery{}, err
	}

	return GetWaybillQuery{
		caller:     caller,
		callerRole: callerRole,
		itemID:     itemID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetWaybillQuery) Validate() error {
	return q.guard.Validate(ErrGetWaybillQueryIsNotConstructed)
}

func (q GetWaybillQuery) Caller() string        { return q.caller }
func (q GetWaybillQuery) CallerRole() user.Role { return q.callerRole }
func (q GetWaybillQuery) ItemID() int64         { return q.itemID }
