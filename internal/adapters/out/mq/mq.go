// Package mq publishes item lifecycle events to a message broker.
package mq

import "context"

// Backend defines the broker operations the service needs.
type Backend interface {
	// Publish sends data to the named queue and returns the message id.
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Close() error
}
