package services

import (
	"errors"
	"fmt"

	"courier/internal/core/domain/model/user"
	"courier/internal/pkg/errs"
)

var ErrSameAccount = errors.New("cannot transfer to the same account")

// Ledger moves balance between two users. Both sides are checked before
// either is mutated, so a failed transfer leaves both balances untouched.
type Ledger struct{}

func NewLedger() Ledger {
	return Ledger{}
}

// Transfer debits amount from `from` and credits it to `to`.
func (l Ledger) Transfer(from, to *user.User, amount int64) error {
	if err := errors.Join(from.Validate(), to.Validate()); err != nil {
		return err
	}
	if from.Username() == to.Username() {
		return errs.NewValueIsInvalidErrorWithCause("recipient", ErrSameAccount)
	}
	if amount < 0 {
		return errs.NewValueIsOutOfRangeError("amount", amount, 0, user.MaxBalance)
	}

	if err := from.CanAdjustBalance(-amount); err != nil {
		return fmt.Errorf("debit %s: %w", from.Username(), err)
	}
	if err := to.CanAdjustBalance(amount); err != nil {
		return fmt.Errorf("credit %s: %w", to.Username(), err)
	}

	// Both checks passed, so neither adjustment can fail.
	_ = from.AdjustBalance(-amount)
	_ = to.AdjustBalance(amount)
	return nil
}
