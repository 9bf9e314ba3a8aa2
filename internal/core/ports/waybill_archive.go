package ports

import (
	"context"

	"courier/internal/core/domain/model/item"
)

// Waybill is the shipping document kept for every sent item.
type Waybill struct {
	ItemID      int64  `json:"itemId"`
	Category    string `json:"category"`
	Cost        int64  `json:"cost"`
	Sender      string `json:"sender"`
	Recipient   string `json:"recipient"`
	Description string `json:"description"`
	SendingDate string `json:"sendingDate"`
	DueDate     string `json:"dueDate"`
}

// WaybillArchive stores waybills outside the relational store.
type WaybillArchive interface {
	Store(ctx context.Context, waybill Waybill) error

	// Load returns the waybill or errs.ErrObjectNotFound.
	Load(ctx context.Context, itemID int64) (Waybill, error)

	Remove(ctx context.Context, itemID int64) error
}

// WaybillOf renders the waybill of a sent item.
func WaybillOf(it *item.Item, transitDays int) Waybill {
	return Waybill{
		ItemID:      it.ID(),
		Category:    it.Category().String(),
		Cost:        it.Cost(),
		Sender:      it.Sender(),
		Recipient:   it.Recipient(),
		Description: it.Description(),
		SendingDate: it.SendingDate().String(),
		DueDate:     it.DueDate(transitDays).String(),
	}
}
