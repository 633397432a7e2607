package shared

import (
	"context"
	"time"
)

// EventHandler handles domain events
type EventHandler interface {
	// Handle processes a domain event
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes returns the event types this handler is interested in
	// An empty slice means the handler receives all events
	EventTypes() []string
}

// EventHandlerFunc adapts a plain function to the EventHandler interface.
type EventHandlerFunc func(ctx context.Context, event DomainEvent) error

// Handle calls the wrapped function
func (f EventHandlerFunc) Handle(ctx context.Context, event DomainEvent) error {
	return f(ctx, event)
}

// EventTypes returns nil; functional handlers declare their types at subscribe time
func (f EventHandlerFunc) EventTypes() []string { return nil }

// Subscription identifies a single registration on the bus so that callers
// can remove exactly the registration they created.
type Subscription interface {
	// ID returns an opaque identifier for the subscription
	ID() uint64
}

// EventPublisher publishes domain events
type EventPublisher interface {
	// Publish dispatches one or more domain events to all current subscribers.
	// It returns after every handler for every event has finished; handler
	// failures never propagate to the publisher.
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber subscribes to domain events
type EventSubscriber interface {
	// Subscribe registers a handler for specific event types and returns a
	// handle for later removal. Without event types the handler receives all
	// events.
	Subscribe(handler EventHandler, eventTypes ...string) Subscription
	// SubscribeOnce registers a handler that is removed after its first
	// dispatch, whether or not the handler returned an error.
	SubscribeOnce(handler EventHandler, eventTypes ...string) Subscription
	// Unsubscribe removes a subscription; removing an already-removed
	// subscription is a no-op.
	Unsubscribe(sub Subscription)
}

// HistoryEntry is a recorded emission in the bus's bounded history buffer.
type HistoryEntry struct {
	EventType  string    `json:"event_type"`
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Event      DomainEvent
}

// EventBus combines publisher and subscriber capabilities
type EventBus interface {
	EventPublisher
	EventSubscriber
	// History returns the most recent recorded emissions, newest last.
	// With an empty eventType all types are returned; limit <= 0 means all.
	History(eventType string, limit int) []HistoryEntry
	// Start starts the event bus
	Start(ctx context.Context) error
	// Stop gracefully stops the event bus, waiting for in-flight handlers
	Stop(ctx context.Context) error
}
