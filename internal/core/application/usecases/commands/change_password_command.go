package commands

import (
	"errors"

	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var ErrChangePasswordCommandIsNotConstructed = errors.New(
	"ChangePasswordCommand must be created via NewChangePasswordCommand constructor",
)

// ChangePasswordCommand replaces the password of an authenticated user.
type ChangePasswordCommand struct { //nolint:recvcheck //using for validation
	username    string
	newPassword string

	guard guard.ConstructorGuard
}

func NewChangePasswordCommand(username, newPassword string) (ChangePasswordCommand, error) {
	var errList []error
	if username == "" {
		errList = append(errList, errs.NewValueIsRequiredError("username"))
	}
	if newPassword == "" {
		errList = append(errList, errs.NewValueIsRequiredError("new password"))
	}
	if err := errors.Join(errList...); err != nil {
		return ChangePasswordCommand{}, err
	}

	return ChangePasswordCommand{
		username:    username,
		newPassword: newPassword,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ChangePasswordCommand) Validate() error {
	return c.guard.Validate(ErrChangePasswordCommandIsNotConstructed)
}

func (c ChangePasswordCommand) Username() string    { return c.username }
func (c ChangePasswordCommand) NewPassword() string { return c.newPassword }
