package commands

import (
	"errors"

	"courier/internal/core/domain/model/user"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var ErrEnsureAdministratorCommandIsNotConstructed = errors.New(
	"EnsureAdministratorCommand must be created via NewEnsureAdministratorCommand constructor",
)

// Profile used when the administrator account is first created.
const (
	DefaultAdministratorName  = "Administrator1"
	DefaultAdministratorPhone = "88888888"
)

// EnsureAdministratorCommand provisions the administrator account if it does
// not exist yet. An existing account is left as it is, password included.
type EnsureAdministratorCommand struct { //nolint:recvcheck //using for validation
	password string
	profile  user.Profile

	guard guard.ConstructorGuard
}

func NewEnsureAdministratorCommand(password string, profile user.Profile) (EnsureAdministratorCommand, error) {
	if password == "" {
		return EnsureAdministratorCommand{}, errs.NewValueIsRequiredError("administrator password")
	}

	return EnsureAdministratorCommand{
		password: password,
		profile:  profile,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c EnsureAdministratorCommand) Validate() error {
	return c.guard.Validate(ErrEnsureAdministratorCommandIsNotConstructed)
}

func (c EnsureAdministratorCommand) Password() string      { return c.password }
func (c EnsureAdministratorCommand) Profile() user.Profile { return c.profile }
