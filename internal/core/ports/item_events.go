package ports

import (
	"context"
	"time"

	"courier/internal/core/domain/model/kernel"
)

type ItemEventType string

const (
	ItemSent     ItemEventType = "item.sent"
	ItemReceived ItemEventType = "item.received"
	ItemDeleted  ItemEventType = "item.deleted"
)

// ItemEvent notifies other systems about an item lifecycle change.
type ItemEvent struct {
	ID         kernel.UUID
	Type       ItemEventType
	ItemID     int64
	Sender     string
	Recipient  string
	Cost       int64
	OccurredAt time.Time
}

type ItemEventPublisher interface {
	Publish(ctx context.Context, event ItemEvent) error
}
