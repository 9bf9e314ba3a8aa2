package queries

import (
	"errors"

	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var ErrListUsersQueryIsNotConstructed = errors.New(
	"ListUsersQuery must be created via NewListUsersQuery constructor",
)

// ListUsersQuery returns every account. Only the administrator may run it.
//
// Example:
//
//	query, _ := NewListUsersQuery("ADMINISTRATOR")
//	users, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrForbidden) {
//	    // caller is a customer
//	}
type ListUsersQuery struct {
	caller string

	guard guard.ConstructorGuard
}

func NewListUsersQuery(caller string) (ListUsersQuery, error) {
	if caller == "" {
		return ListUsersQuery{}, errs.NewValueIsRequiredError("caller")
	}
	return ListUsersQuery{caller: caller, guard: guard.NewConstructorGuard()}, nil
}

func (q ListUsersQuery) Validate() error {
	return q.guard.Validate(ErrListUsersQueryIsNotConstructed)
}

func (q ListUsersQuery) Caller() string { return q.caller }
