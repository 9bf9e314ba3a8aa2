package user

import (
	"fmt"

	"courier/internal/pkg/errs"
)

// Role gates which operations a user may invoke. Values match the stored column.
type Role int

const (
	Customer      Role = 0
	Administrator Role = 1
)

func (r Role) Validate() error {
	if r != Customer && r != Administrator {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a known role", int(r)))
	}
	return nil
}

func (r Role) String() string {
	switch r {
	case Customer:
		return "Customer"
	case Administrator:
		return "Administrator"
	default:
		return "Unknown"
	}
}
