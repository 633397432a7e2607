package event

import (
	"sync"
	"sync/atomic"

	"github.com/handwerkos/backend/internal/domain/shared"
)

// subscription is one registration on the bus. Once-subscriptions are
// removed after their first dispatch, whether or not the handler failed.
type subscription struct {
	id         uint64
	handler    shared.EventHandler
	eventTypes []string
	once       bool
	fired      atomic.Bool
}

// claim reserves a once-subscription for dispatch so that concurrent
// emissions cannot both invoke it. Non-once subscriptions always win.
func (s *subscription) claim() bool {
	if !s.once {
		return true
	}
	return s.fired.CompareAndSwap(false, true)
}

// ID returns the registry-assigned identifier
func (s *subscription) ID() uint64 { return s.id }

var _ shared.Subscription = (*subscription)(nil)

// HandlerRegistry manages event subscriptions. A subscription without
// event types receives all events.
type HandlerRegistry struct {
	mu       sync.RWMutex
	nextID   atomic.Uint64
	byType   map[string][]*subscription
	wildcard []*subscription
}

// NewHandlerRegistry creates an empty registry
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		byType: make(map[string][]*subscription),
	}
}

// Add registers a handler and returns its subscription handle
func (r *HandlerRegistry) Add(handler shared.EventHandler, once bool, eventTypes ...string) *subscription {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}

	sub := &subscription{
		id:         r.nextID.Add(1),
		handler:    handler,
		eventTypes: eventTypes,
		once:       once,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(eventTypes) == 0 {
		r.wildcard = append(r.wildcard, sub)
		return sub
	}
	for _, eventType := range eventTypes {
		r.byType[eventType] = append(r.byType[eventType], sub)
	}
	return sub
}

// Remove deletes a subscription wherever it is registered. Removing an
// unknown or already-removed subscription is a no-op.
func (r *HandlerRegistry) Remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.wildcard = removeByID(r.wildcard, id)
	for eventType, subs := range r.byType {
		r.byType[eventType] = removeByID(subs, id)
		if len(r.byType[eventType]) == 0 {
			delete(r.byType, eventType)
		}
	}
}

// Snapshot returns the subscriptions currently registered for an event
// type, including wildcard subscriptions. Dispatch iterates the snapshot
// so a handler unsubscribing itself mid-dispatch cannot corrupt the list.
func (r *HandlerRegistry) Snapshot(eventType string) []*subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typed := r.byType[eventType]
	result := make([]*subscription, 0, len(typed)+len(r.wildcard))
	result = append(result, typed...)
	result = append(result, r.wildcard...)
	return result
}

// Len reports the number of distinct subscriptions
func (r *HandlerRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[uint64]bool)
	for _, sub := range r.wildcard {
		seen[sub.id] = true
	}
	for _, subs := range r.byType {
		for _, sub := range subs {
			seen[sub.id] = true
		}
	}
	return len(seen)
}

func removeByID(subs []*subscription, id uint64) []*subscription {
	result := subs[:0]
	for _, s := range subs {
		if s.id != id {
			result = append(result, s)
		}
	}
	return result
}
