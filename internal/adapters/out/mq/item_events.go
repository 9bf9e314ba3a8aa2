package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"courier/internal/core/ports"
)

// ItemEventsQueue is where item lifecycle events are published.
const ItemEventsQueue = "courier.items"

type itemEventMessage struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	ItemID     int64     `json:"itemId"`
	Sender     string    `json:"sender"`
	Recipient  string    `json:"recipient"`
	Cost       int64     `json:"cost"`
	OccurredAt time.Time `json:"occurredAt"`
}

// ItemEventPublisher implements ports.ItemEventPublisher on top of a Backend.
type ItemEventPublisher struct {
	backend Backend
	queue   string
}

func NewItemEventPublisher(backend Backend) *ItemEventPublisher {
	return &ItemEventPublisher{backend: backend, queue: ItemEventsQueue}
}

func (p *ItemEventPublisher) Publish(ctx context.Context, event ports.ItemEvent) error {
	body, err := json.Marshal(itemEventMessage{
		ID:         event.ID.String(),
		Type:       string(event.Type),
		ItemID:     event.ItemID,
		Sender:     event.Sender,
		Recipient:  event.Recipient,
		Cost:       event.Cost,
		OccurredAt: event.OccurredAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Type, err)
	}

	_, err = p.backend.Publish(ctx, p.queue, body, map[string]string{"type": string(event.Type)})
	if err != nil {
		return fmt.Errorf("publish %s event for item %d: %w", event.Type, event.ItemID, err)
	}
	return nil
}
