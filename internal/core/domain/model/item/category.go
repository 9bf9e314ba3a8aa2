package item

import (
	"fmt"

	"courier/internal/pkg/errs"
)

// Category is the shipping price tier of an item.
type Category int

const (
	Fragile Category = 0
	Book    Category = 1
	Normal  Category = 2
)

// Unit prices per shipped unit, in balance units.
const (
	FragileUnitPrice int64 = 8
	BookUnitPrice    int64 = 2
	NormalUnitPrice  int64 = 5
)

// MaxAmount bounds the amount on a single waybill so cost cannot overflow the ledger.
const MaxAmount int64 = 100_000_000

func (c Category) Validate() error {
	if _, ok := unitPrices()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%d is not a known category", int(c)))
	}
	return nil
}

func (c Category) UnitPrice() int64 {
	return unitPrices()[c]
}

func (c Category) String() string {
	switch c {
	case Fragile:
		return "Fragile"
	case Book:
		return "Book"
	case Normal:
		return "Normal"
	default:
		return "Unknown"
	}
}

// Cost is amount multiplied by the category's unit price.
func Cost(c Category, amount int64) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	if amount < 1 || amount > MaxAmount {
		return 0, errs.NewValueIsOutOfRangeError("amount", amount, 1, MaxAmount)
	}
	return amount * c.UnitPrice(), nil
}

func unitPrices() map[Category]int64 {
	return map[Category]int64{
		Fragile: FragileUnitPrice,
		Book:    BookUnitPrice,
		Normal:  NormalUnitPrice,
	}
}
