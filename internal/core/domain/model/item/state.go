package item

import (
	"fmt"

	"courier/internal/pkg/errs"
)

// State values match what is stored in the items table.
type State int

const (
	Received         State = 1
	PendingReceiving State = 2
)

func (s State) Validate() error {
	if s != Received && s != PendingReceiving {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid state", int(s)))
	}
	return nil
}

func (s State) String() string {
	switch s {
	case Received:
		return "Received"
	case PendingReceiving:
		return "PendingReceiving"
	default:
		return "Unknown"
	}
}
