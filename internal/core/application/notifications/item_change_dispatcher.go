// Package notifications reacts to committed item changes: it publishes
// lifecycle events and keeps the waybill archive in step with the items
// table. Both side effects are best effort; failures are logged and never
// undo the committed transaction.
package notifications

import (
	"context"
	"log/slog"

	"courier/internal/core/domain/model/item"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/ports"
)

type ItemChangeDispatcher struct {
	publisher   ports.ItemEventPublisher
	archive     ports.WaybillArchive
	clock       ports.Clock
	transitDays int
	logger      *slog.Logger
}

func NewItemChangeDispatcher(
	publisher ports.ItemEventPublisher,
	archive ports.WaybillArchive,
	clock ports.Clock,
	transitDays int,
	logger *slog.Logger,
) *ItemChangeDispatcher {
	return &ItemChangeDispatcher{
		publisher:   publisher,
		archive:     archive,
		clock:       clock,
		transitDays: transitDays,
		logger:      logger.With("component", "item-change-dispatcher"),
	}
}

// OnCommit has the ports.CommitHook signature.
func (d *ItemChangeDispatcher) OnCommit(ctx context.Context, changes []ports.AggregateChange) {
	for _, change := range changes {
		it, ok := change.Aggregate.(*item.Item)
		if !ok {
			continue
		}

		switch change.Kind {
		case ports.AggregateAdded:
			d.archiveWaybill(ctx, it)
			d.publish(ctx, ports.ItemSent, it)
		case ports.AggregateUpdated:
			if it.State() == item.Received {
				d.publish(ctx, ports.ItemReceived, it)
			}
		case ports.AggregateRemoved:
			d.removeWaybill(ctx, it)
			d.publish(ctx, ports.ItemDeleted, it)
		}
	}
}

func (d *ItemChangeDispatcher) publish(ctx context.Context, eventType ports.ItemEventType, it *item.Item) {
	event := ports.ItemEvent{
		ID:         kernel.NewUUID(),
		Type:       eventType,
		ItemID:     it.ID(),
		Sender:     it.Sender(),
		Recipient:  it.Recipient(),
		Cost:       it.Cost(),
		OccurredAt: d.clock.Now(),
	}
	if err := d.publisher.Publish(ctx, event); err != nil {
		d.logger.WarnContext(ctx, "failed to publish item event",
			"event", string(eventType), "item_id", it.ID(), "error", err)
	}
}

func (d *ItemChangeDispatcher) archiveWaybill(ctx context.Context, it *item.Item) {
	if err := d.archive.Store(ctx, ports.WaybillOf(it, d.transitDays)); err != nil {
		d.logger.WarnContext(ctx, "failed to archive waybill", "item_id", it.ID(), "error", err)
	}
}

func (d *ItemChangeDispatcher) removeWaybill(ctx context.Context, it *item.Item) {
	if err := d.archive.Remove(ctx, it.ID()); err != nil {
		d.logger.WarnContext(ctx, "failed to remove waybill", "item_id", it.ID(), "error", err)
	}
}
