// Package queries contains read operations. User read models are served by
// plain SQL against the store; item reads go through the item repository so
// the visibility rules can be exercised without a database.
package queries

import (
	"errors"

	"courier/internal/core/domain/model/user"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var ErrGetUserInfoQueryIsNotConstructed = errors.New(
	"GetUserInfoQuery must be created via NewGetUserInfoQuery constructor",
)

// GetUserInfoQuery returns the account of the calling user.
type GetUserInfoQuery struct {
	username string

	guard guard.ConstructorGuard
}

func NewGetUserInfoQuery(username string) (GetUserInfoQuery, error) {
	if username == "" {
		return GetUserInfoQuery{}, errs.NewValueIsRequiredError("username")
	}
	return GetUserInfoQuery{username: username, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUserInfoQuery) Validate() error {
	return q.guard.Validate(ErrGetUserInfoQueryIsNotConstructed)
}

func (q GetUserInfoQuery) Username() string { return q.username }

// UserInfoResponse is the public view of a user. The password hash never
// leaves the store.
type UserInfoResponse struct {
	Username string
	Role     user.Role
	Balance  int64
	Name     string
	Phone    string
	Address  string
}
