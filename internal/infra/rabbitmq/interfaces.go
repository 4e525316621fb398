package rabbitmq

import "context"

// PublisherInterface is what the service layer depends on for emitting
// lifecycle notifications. Publish wraps data in an Envelope keyed by pattern.
type PublisherInterface interface {
	Publish(ctx context.Context, pattern string, data any) error
}

var _ PublisherInterface = (*Publisher)(nil)
