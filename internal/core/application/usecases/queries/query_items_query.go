package queries

import (
	"errors"
	"fmt"

	"courier/internal/core/domain/model/item"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/user"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var ErrQueryItemsQueryIsNotConstructed = errors.New(
	"QueryItemsQuery must be created via NewQueryItemsQuery constructor",
)

// ItemScope selects whose items a query may see.
type ItemScope int

const (
	// AllItems is restricted to the administrator.
	AllItems ItemScope = 0
	// SentItems are items whose sender is the caller.
	SentItems ItemScope = 1
	// IncomingItems are items whose recipient is the caller.
	IncomingItems ItemScope = 2
)

func (s ItemScope) Validate() error {
	switch s {
	case AllItems, SentItems, IncomingItems:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("unknown item scope %d", int(s)))
	}
}

// QueryItemsQuery filters items within a scope. For SentItems and
// IncomingItems the scope overrides the sender or recipient in the filter.
type QueryItemsQuery struct {
	caller     string
	callerRole user.Role
	scope      ItemScope
	filter     item.Filter

	guard guard.ConstructorGuard
}

func NewQueryItemsQuery(
	caller string,
	callerRole user.Role,
	scope ItemScope,
	filter item.Filter,
) (QueryItemsQuery, error) {
	var errList []error
	if caller == "" {
		errList = append(errList, errs.NewValueIsRequiredError("caller"))
	}
	errList = append(errList, scope.Validate(), callerRole.Validate())
	if err := errors.Join(errList...); err != nil {
		return QueryItemsQuery{}, err
	}

	if scope == AllItems && callerRole != user.Administrator {
		return QueryItemsQuery{}, errs.NewForbiddenError(caller, "query all items")
	}

	return QueryItemsQuery{
		caller:     caller,
		callerRole: callerRole,
		scope:      scope,
		filter:     filter,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q QueryItemsQuery) Validate() error {
	return q.guard.Validate(ErrQueryItemsQueryIsNotConstructed)
}

func (q QueryItemsQuery) Caller() string   { return q.caller }
func (q QueryItemsQuery) Scope() ItemScope { return q.scope }

// EffectiveFilter is the filter with the scope applied.
func (q QueryItemsQuery) EffectiveFilter() item.Filter {
	switch q.scope {
	case SentItems:
		return q.filter.WithSender(q.caller)
	case IncomingItems:
		return q.filter.WithRecipient(q.caller)
	default:
		return q.filter
	}
}

// ItemResponse is the read model of one item. ReceivingDate is nil until the
// item is received.
type ItemResponse struct {
	ID            int64
	Cost          int64
	Category      item.Category
	State         item.State
	SendingDate   kernel.Date
	ReceivingDate *kernel.Date
	Sender        string
	Recipient     string
	Description   string
}

func itemResponseOf(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:            it.ID(),
		Cost:          it.Cost(),
		Category:      it.Category(),
		State:         it.State(),
		SendingDate:   it.SendingDate(),
		ReceivingDate: it.ReceivingDate(),
		Sender:        it.Sender(),
		Recipient:     it.Recipient(),
		Description:   it.Description(),
	}
}
