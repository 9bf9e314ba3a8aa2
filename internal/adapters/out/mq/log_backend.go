package mq

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogBackend writes messages to the log instead of a broker. It is used when
// no broker URL is configured.
type LogBackend struct {
	logger *slog.Logger
}

func NewLogBackend(logger *slog.Logger) *LogBackend {
	return &LogBackend{logger: logger.With("component", "mq-log")}
}

func (b *LogBackend) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	id := uuid.NewString()
	b.logger.InfoContext(ctx, "message published",
		"channel", channel,
		"message_id", id,
		"attributes", attrs,
		"body", string(data),
	)
	return id, nil
}

func (b *LogBackend) Close() error { return nil }
