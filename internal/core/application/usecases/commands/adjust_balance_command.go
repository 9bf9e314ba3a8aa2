package commands

import (
	"errors"

	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var ErrAdjustBalanceCommandIsNotConstructed = errors.New(
	"AdjustBalanceCommand must be created via NewAdjustBalanceCommand constructor",
)

// AdjustBalanceCommand adds delta (possibly negative) to target's balance on
// behalf of actor. Customers may only adjust their own balance; the
// administrator may adjust anyone's.
//
// Example:
//
//	cmd, _ := NewAdjustBalanceCommand("alice", "alice", 500)
//	balance, err := handler.Handle(ctx, cmd)
type AdjustBalanceCommand struct { //nolint:recvcheck //using for validation
	actor  string
	target string
	delta  int64

	guard guard.ConstructorGuard
}

func NewAdjustBalanceCommand(actor, target string, delta int64) (AdjustBalanceCommand, error) {
	var errList []error
	if actor == "" {
		errList = append(errList, errs.NewValueIsRequiredError("actor"))
	}
	if target == "" {
		errList = append(errList, errs.NewValueIsRequiredError("target"))
	}
	if err := errors.Join(errList...); err != nil {
		return AdjustBalanceCommand{}, err
	}

	return AdjustBalanceCommand{
		actor:  actor,
		target: target,
		delta:  delta,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c AdjustBalanceCommand) Validate() error {
	return c.guard.Validate(ErrAdjustBalanceCommandIsNotConstructed)
}

func (c AdjustBalanceCommand) Actor() string  { return c.actor }
func (c AdjustBalanceCommand) Target() string { return c.target }
func (c AdjustBalanceCommand) Delta() int64   { return c.delta }

// IsSelf reports whether the actor adjusts their own balance.
func (c AdjustBalanceCommand) IsSelf() bool { return c.actor == c.target }
