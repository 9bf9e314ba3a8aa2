package mq_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"courier/internal/adapters/out/mq"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBackend struct{ mock.Mock }

func (m *MockBackend) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	args := m.Called(ctx, channel, data, attrs)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) Close() error { return m.Called().Error(0) }

func sentEvent() ports.ItemEvent {
	return ports.ItemEvent{
		ID:         kernel.NewUUID(),
		Type:       ports.ItemSent,
		ItemID:     12,
		Sender:     "alice",
		Recipient:  "bob",
		Cost:       10,
		OccurredAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestItemEventPublisher_Publish(t *testing.T) {
	ctx := t.Context()
	event := sentEvent()

	backend := new(MockBackend)
	backend.On("Publish", ctx, mq.ItemEventsQueue, mock.MatchedBy(func(body []byte) bool {
		var decoded map[string]any
		if err := json.Unmarshal(body, &decoded); err != nil {
			return false
		}
		return decoded["type"] == "item.sent" &&
			decoded["itemId"] == float64(12) &&
			decoded["sender"] == "alice" &&
			decoded["recipient"] == "bob" &&
			decoded["id"] == event.ID.String()
	}), map[string]string{"type": "item.sent"}).Return("m-1", nil).Once()

	require.NoError(t, mq.NewItemEventPublisher(backend).Publish(ctx, event))
	backend.AssertExpectations(t)
}

func TestItemEventPublisher_PublishError(t *testing.T) {
	ctx := t.Context()
	backend := new(MockBackend)
	backend.On("Publish", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("channel closed")).Once()

	err := mq.NewItemEventPublisher(backend).Publish(ctx, sentEvent())
	require.ErrorContains(t, err, "item.sent")
	require.ErrorContains(t, err, "channel closed")
}

func TestLogBackend_Publish(t *testing.T) {
	var buf bytes.Buffer
	backend := mq.NewLogBackend(slog.New(slog.NewJSONHandler(&buf, nil)))

	id, err := backend.Publish(t.Context(), "courier.items", []byte(`{"x":1}`), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Contains(t, buf.String(), `"channel":"courier.items"`)
	assert.Contains(t, buf.String(), id)
	assert.NoError(t, backend.Close())
}

func TestNewRabbitMQClient_RequiresURL(t *testing.T) {
	_, err := mq.NewRabbitMQClient(mq.RabbitMQConfig{URL: "  "})
	require.EqualError(t, err, "rabbitmq url is required")
}
