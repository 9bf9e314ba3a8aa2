package item

// DateParts matches a calendar date part by part. Nil parts match anything.
type DateParts struct {
	Year  *int
	Month *int
	Day   *int
}

func (d DateParts) IsEmpty() bool {
	return d.Year == nil && d.Month == nil && d.Day == nil
}

// Filter selects items. Set fields are ANDed; nil fields are left out of the
// predicate. The zero Filter selects every item.
type Filter struct {
	ID            *int64
	SendingDate   DateParts
	ReceivingDate DateParts
	Sender        *string
	Recipient     *string
}

// ByID selects a single item.
func ByID(id int64) Filter {
	return Filter{ID: &id}
}

func (f Filter) WithSender(username string) Filter {
	f.Sender = &username
	return f
}

func (f Filter) WithRecipient(username string) Filter {
	f.Recipient = &username
	return f
}

func (f Filter) IsEmpty() bool {
	return f.ID == nil && f.SendingDate.IsEmpty() && f.ReceivingDate.IsEmpty() &&
		f.Sender == nil && f.Recipient == nil
}
