// Package itemrepo persists item aggregates in the items table. Dates are
// stored as separate year, month and day columns; a pending item has NULL
// receiving columns.
package itemrepo

import (
	"courier/internal/core/domain/model/item"
	"courier/internal/core/domain/model/kernel"
)

// ItemDTO is the row shape of the items table.
type ItemDTO struct {
	ID             int64 `gorm:"primaryKey;autoIncrement:false"`
	Cost           int64
	Category       int `gorm:"type:smallint"`
	State          int `gorm:"type:smallint"`
	SendingYear    int
	SendingMonth   int
	SendingDay     int
	ReceivingYear  *int
	ReceivingMonth *int
	ReceivingDay   *int
	SrcUsername    string `gorm:"size:40;index"`
	DstUsername    string `gorm:"size:40;index"`
	Description    string
}

func (ItemDTO) TableName() string {
	return "items"
}

func fromDomain(it *item.Item) ItemDTO {
	dto := ItemDTO{
		ID:           it.ID(),
		Cost:         it.Cost(),
		Category:     int(it.Category()),
		State:        int(it.State()),
		SendingYear:  it.SendingDate().Year(),
		SendingMonth: it.SendingDate().Month(),
		SendingDay:   it.SendingDate().Day(),
		SrcUsername:  it.Sender(),
		DstUsername:  it.Recipient(),
		Description:  it.Description(),
	}

	if rd := it.ReceivingDate(); rd != nil {
		y, m, d := rd.Year(), rd.Month(), rd.Day()
		dto.ReceivingYear, dto.ReceivingMonth, dto.ReceivingDay = &y, &m, &d
	}

	return dto
}

func toDomain(dto ItemDTO) (*item.Item, error) {
	sent, err := kernel.NewDate(dto.SendingYear, dto.SendingMonth, dto.SendingDay)
	if err != nil {
		return nil, err
	}

	var received *kernel.Date
	if dto.ReceivingYear != nil && dto.ReceivingMonth != nil && dto.ReceivingDay != nil {
		d, dateErr := kernel.NewDate(*dto.ReceivingYear, *dto.ReceivingMonth, *dto.ReceivingDay)
		if dateErr != nil {
			return nil, dateErr
		}
		received = &d
	}

	return item.RestoreItem(
		dto.ID,
		dto.Cost,
		item.Category(dto.Category),
		item.State(dto.State),
		sent,
		received,
		dto.SrcUsername,
		dto.DstUsername,
		dto.Description,
	)
}
