package event

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/handwerkos/backend/internal/domain/audit"
	"github.com/handwerkos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultHandlerTimeout bounds a single handler invocation so a stuck
// subscriber cannot block the emitting operation forever.
const DefaultHandlerTimeout = 30 * time.Second

// InMemoryEventBus implements shared.EventBus with in-process pub/sub.
//
// Publish appends each event to a bounded history buffer, writes a
// synchronous audit record for allow-listed event types, fans the event
// out to all current subscribers concurrently and awaits them, then runs
// the built-in automation for the event type, if one is registered.
// Handler failures are isolated: they are logged and re-emitted as
// SystemErrorOccurred, never returned to the publisher.
type InMemoryEventBus struct {
	registry    *HandlerRegistry
	automations map[string]shared.EventHandler
	autoMu      sync.RWMutex
	history     *historyBuffer
	auditable   map[string]struct{}
	recorder    audit.Recorder
	timeout     time.Duration
	logger      *zap.Logger
	running     atomic.Bool
	wg          sync.WaitGroup
}

// BusOption configures the bus at construction time
type BusOption func(*InMemoryEventBus)

// WithHistoryCapacity overrides the history buffer capacity
func WithHistoryCapacity(capacity int) BusOption {
	return func(b *InMemoryEventBus) {
		b.history = newHistoryBuffer(capacity)
	}
}

// WithAuditRecorder attaches the audit side-channel. Only the given event
// types are recorded; for every other type the recorder is never called.
func WithAuditRecorder(recorder audit.Recorder, eventTypes []string) BusOption {
	return func(b *InMemoryEventBus) {
		b.recorder = recorder
		b.auditable = make(map[string]struct{}, len(eventTypes))
		for _, t := range eventTypes {
			b.auditable[t] = struct{}{}
		}
	}
}

// WithHandlerTimeout overrides the per-handler timeout; zero disables it
func WithHandlerTimeout(timeout time.Duration) BusOption {
	return func(b *InMemoryEventBus) {
		b.timeout = timeout
	}
}

// NewInMemoryEventBus creates a bus with an empty subscriber list
func NewInMemoryEventBus(logger *zap.Logger, opts ...BusOption) *InMemoryEventBus {
	b := &InMemoryEventBus{
		registry:    NewHandlerRegistry(),
		automations: make(map[string]shared.EventHandler),
		history:     newHistoryBuffer(DefaultHistoryCapacity),
		timeout:     DefaultHandlerTimeout,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// RegisterAutomation binds a built-in workflow handler to one event type.
// Automations run after all user subscribers for the emission finished.
func (b *InMemoryEventBus) RegisterAutomation(eventType string, handler shared.EventHandler) {
	b.autoMu.Lock()
	defer b.autoMu.Unlock()
	b.automations[eventType] = handler
}

// Subscribe registers a handler for specific event types. Without event
// types the handler's own EventTypes() is used; if that is also empty the
// handler receives all events.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) shared.Subscription {
	sub := b.registry.Add(handler, false, eventTypes...)
	b.logger.Debug("handler subscribed",
		zap.Uint64("subscription_id", sub.ID()),
		zap.Strings("event_types", eventTypes),
	)
	return sub
}

// SubscribeOnce registers a handler that is removed after its first
// dispatch, whether or not the handler returned an error.
func (b *InMemoryEventBus) SubscribeOnce(handler shared.EventHandler, eventTypes ...string) shared.Subscription {
	sub := b.registry.Add(handler, true, eventTypes...)
	b.logger.Debug("once handler subscribed",
		zap.Uint64("subscription_id", sub.ID()),
		zap.Strings("event_types", eventTypes),
	)
	return sub
}

// Unsubscribe removes a subscription; unknown handles are ignored
func (b *InMemoryEventBus) Unsubscribe(sub shared.Subscription) {
	if sub == nil {
		return
	}
	b.registry.Remove(sub.ID())
}

// Publish dispatches events to all current subscribers and awaits them.
// It never returns a handler error; the only observable failure channel
// for subscribers is the SystemErrorOccurred event stream.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		b.publishOne(ctx, event)
	}
	return nil
}

func (b *InMemoryEventBus) publishOne(ctx context.Context, event shared.DomainEvent) {
	b.history.append(event)
	b.writeAuditRecord(ctx, event)

	subs := b.registry.Snapshot(event.EventType())

	type failure struct {
		sub *subscription
		err error
	}

	var (
		mu       sync.Mutex
		failures []failure
		wg       sync.WaitGroup
	)

	for _, sub := range subs {
		if !sub.claim() {
			continue
		}
		wg.Add(1)
		b.wg.Add(1)
		go func(sub *subscription) {
			defer wg.Done()
			defer b.wg.Done()
			if err := b.dispatchToHandler(ctx, sub.handler, event); err != nil {
				mu.Lock()
				failures = append(failures, failure{sub: sub, err: err})
				mu.Unlock()
			}
		}(sub)
	}
	wg.Wait()

	// Once-subscriptions leave the registry after dispatch, error or not,
	// so a failing handler cannot turn into a retry storm.
	for _, sub := range subs {
		if sub.once && sub.fired.Load() {
			b.registry.Remove(sub.id)
		}
	}

	for _, f := range failures {
		b.reportHandlerFailure(ctx, event, f.err)
	}

	b.runAutomation(ctx, event)
}

// writeAuditRecord persists the audit entry for allow-listed event types
// before any subscriber runs. Audit writes are best-effort: a failure is
// logged and the emission proceeds.
func (b *InMemoryEventBus) writeAuditRecord(ctx context.Context, event shared.DomainEvent) {
	if b.recorder == nil {
		return
	}
	if _, ok := b.auditable[event.EventType()]; !ok {
		return
	}
	if err := b.recorder.Record(ctx, audit.NewEntry(event)); err != nil {
		b.logger.Warn("audit record write failed",
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()),
			zap.Error(err),
		)
	}
}

// reportHandlerFailure logs the error and re-emits it as a system error
// event. SystemErrorOccurred itself is exempt so a failing error handler
// cannot recurse.
func (b *InMemoryEventBus) reportHandlerFailure(ctx context.Context, event shared.DomainEvent, handlerErr error) {
	b.logger.Error("event handler failed",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.Error(handlerErr),
	)
	if event.EventType() == shared.EventTypeSystemError {
		return
	}
	b.publishOne(ctx, shared.NewSystemErrorEvent(event, handlerErr))
}

func (b *InMemoryEventBus) runAutomation(ctx context.Context, event shared.DomainEvent) {
	b.autoMu.RLock()
	handler, ok := b.automations[event.EventType()]
	b.autoMu.RUnlock()
	if !ok {
		return
	}

	b.wg.Add(1)
	defer b.wg.Done()

	if err := b.dispatchToHandler(ctx, handler, event); err != nil {
		b.reportHandlerFailure(ctx, event, err)
	}
}

// dispatchToHandler invokes one handler with panic recovery and the
// per-handler timeout applied.
func (b *InMemoryEventBus) dispatchToHandler(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	return handler.Handle(ctx, event)
}

// History returns the most recent recorded emissions, oldest first
func (b *InMemoryEventBus) History(eventType string, limit int) []shared.HistoryEntry {
	return b.history.recent(eventType, limit)
}

// Start marks the bus as running
func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.running.Store(true)
	b.logger.Info("event bus started",
		zap.Int("audit_allow_list_size", len(b.auditable)),
	)
	return nil
}

// Stop waits for all in-flight handlers before returning
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.running.Store(false)

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		b.logger.Warn("event bus stop timed out waiting for handlers")
		return ctx.Err()
	}

	b.logger.Info("event bus stopped")
	return nil
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
