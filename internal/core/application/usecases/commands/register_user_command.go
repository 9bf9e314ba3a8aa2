package commands

import (
	"errors"

	"courier/internal/core/domain/model/user"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand represents a sign-up request. Only customers may
// register; the administrator account is provisioned at startup.
//
// Example:
//
//	cmd, err := NewRegisterUserCommand("alice", "pw1", user.Customer, user.Profile{Name: "Alice"})
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	username string
	password string
	profile  user.Profile

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand checks the requested role and the presence of
// credentials. Username length is left to the user aggregate.
func NewRegisterUserCommand(
	username, password string,
	role user.Role,
	profile user.Profile,
) (RegisterUserCommand, error) {
	cmd := RegisterUserCommand{
		profile: profile,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUsername(username),
		cmd.setPassword(password),
		cmd.checkRole(role),
	); err != nil {
		return RegisterUserCommand{}, err
	}

	return cmd, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) Username() string      { return c.username }
func (c RegisterUserCommand) Password() string      { return c.password }
func (c RegisterUserCommand) Profile() user.Profile { return c.profile }

func (c *RegisterUserCommand) setUsername(username string) error {
	if username == "" {
		return errs.NewValueIsRequiredError("username")
	}
	c.username = username
	return nil
}

func (c *RegisterUserCommand) setPassword(password string) error {
	if password == "" {
		return errs.NewValueIsRequiredError("password")
	}
	c.password = password
	return nil
}

func (c *RegisterUserCommand) checkRole(role user.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	if role == user.Administrator {
		return errs.NewForbiddenError(c.username, "register as administrator")
	}
	return nil
}
