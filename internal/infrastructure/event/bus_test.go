package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/audit"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testEvent implements DomainEvent for testing
type testEvent struct {
	shared.BaseDomainEvent
	Data string `json:"data"`
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "TestAggregate", uuid.New(), uuid.New()),
		Data:            "test data",
	}
}

// testHandler implements EventHandler for testing
type testHandler struct {
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	delay      time.Duration
	panicMsg   string
	mu         sync.Mutex
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.delay > 0 {
		select {
		case <-time.After(h.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if h.panicMsg != "" {
		panic(h.panicMsg)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return h.err
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) getHandled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

// testRecorder implements audit.Recorder for testing
type testRecorder struct {
	mu      sync.Mutex
	entries []audit.Entry
	err     error
}

func (r *testRecorder) Record(ctx context.Context, entry audit.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *testRecorder) getEntries() []audit.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]audit.Entry(nil), r.entries...)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newTestHandler("TestEvent")
	bus.Subscribe(handler, "TestEvent")

	event := newTestEvent("TestEvent")
	err := bus.Publish(context.Background(), event)

	require.NoError(t, err)
	require.Len(t, handler.getHandled(), 1)
	assert.Equal(t, event, handler.getHandled()[0])
}

func TestInMemoryEventBus_Publish_MultipleHandlers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler1 := newTestHandler("TestEvent")
	handler2 := newTestHandler("TestEvent")
	bus.Subscribe(handler1, "TestEvent")
	bus.Subscribe(handler2, "TestEvent")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("TestEvent")))
	assert.Len(t, handler1.getHandled(), 1)
	assert.Len(t, handler2.getHandled(), 1)
}

func TestInMemoryEventBus_Publish_WildcardHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	wildcard := newTestHandler()
	bus.Subscribe(wildcard)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("EventA")))
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("EventB")))
	assert.Len(t, wildcard.getHandled(), 2)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newTestHandler("TestEvent")
	sub := bus.Subscribe(handler, "TestEvent")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("TestEvent")))
	bus.Unsubscribe(sub)
	// removing twice is a no-op
	bus.Unsubscribe(sub)
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("TestEvent")))

	assert.Len(t, handler.getHandled(), 1)
}

func TestInMemoryEventBus_SubscribeOnce_FiresExactlyOnce(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newTestHandler("TestEvent")
	bus.SubscribeOnce(handler, "TestEvent")

	for i := 0; i < 5; i++ {
		require.NoError(t, bus.Publish(context.Background(), newTestEvent("TestEvent")))
	}

	assert.Len(t, handler.getHandled(), 1)
}

func TestInMemoryEventBus_SubscribeOnce_RemovedDespiteError(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	handler := newTestHandler("TestEvent")
	handler.err = errors.New("boom")
	bus.SubscribeOnce(handler, "TestEvent")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("TestEvent")))
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("TestEvent")))

	assert.Len(t, handler.getHandled(), 1)
}

func TestInMemoryEventBus_HandlerIsolation(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	failing := newTestHandler("TestEvent")
	failing.err = errors.New("boom")
	panicking := newTestHandler("TestEvent")
	panicking.panicMsg = "kaboom"
	healthy := newTestHandler("TestEvent")

	bus.Subscribe(failing, "TestEvent")
	bus.Subscribe(panicking, "TestEvent")
	bus.Subscribe(healthy, "TestEvent")

	err := bus.Publish(context.Background(), newTestEvent("TestEvent"))

	require.NoError(t, err)
	assert.Len(t, healthy.getHandled(), 1)
}

func TestInMemoryEventBus_HandlerFailureEmitsSystemError(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	failing := newTestHandler("TestEvent")
	failing.err = errors.New("boom")
	bus.Subscribe(failing, "TestEvent")

	sysHandler := newTestHandler(shared.EventTypeSystemError)
	bus.Subscribe(sysHandler, shared.EventTypeSystemError)

	event := newTestEvent("TestEvent")
	require.NoError(t, bus.Publish(context.Background(), event))

	handled := sysHandler.getHandled()
	require.Len(t, handled, 1)
	sysEvent, ok := handled[0].(*shared.SystemErrorEvent)
	require.True(t, ok)
	assert.Equal(t, "TestEvent", sysEvent.FailedEventType)
	assert.Equal(t, event.EventID().String(), sysEvent.FailedEventID)
	assert.Equal(t, "boom", sysEvent.HandlerError)
}

func TestInMemoryEventBus_SystemErrorRecursionGuard(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	// A system error handler that itself fails must not trigger another
	// system error emission.
	var sysCalls atomic.Int64
	bus.Subscribe(shared.EventHandlerFunc(func(ctx context.Context, event shared.DomainEvent) error {
		sysCalls.Add(1)
		return errors.New("error handler is broken too")
	}), shared.EventTypeSystemError)

	failing := newTestHandler("TestEvent")
	failing.err = errors.New("boom")
	bus.Subscribe(failing, "TestEvent")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("TestEvent")))
	assert.Equal(t, int64(1), sysCalls.Load())
}

func TestInMemoryEventBus_AuditAllowList(t *testing.T) {
	recorder := &testRecorder{}
	bus := NewInMemoryEventBus(zap.NewNop(),
		WithAuditRecorder(recorder, []string{"AuditedEvent"}),
	)

	// not in the allow-list: never recorded
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("PlainEvent")))
	assert.Empty(t, recorder.getEntries())

	// in the allow-list with zero subscribers: exactly one record
	audited := newTestEvent("AuditedEvent")
	require.NoError(t, bus.Publish(context.Background(), audited))
	entries := recorder.getEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "AuditedEvent", entries[0].EventType)
	assert.Equal(t, audited.EventID(), entries[0].EventID)

	// multiple subscribers still yield one record per emission
	bus.Subscribe(newTestHandler("AuditedEvent"), "AuditedEvent")
	bus.Subscribe(newTestHandler("AuditedEvent"), "AuditedEvent")
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("AuditedEvent")))
	assert.Len(t, recorder.getEntries(), 2)
}

func TestInMemoryEventBus_AuditWriteFailureIsSwallowed(t *testing.T) {
	recorder := &testRecorder{err: errors.New("audit store down")}
	bus := NewInMemoryEventBus(zap.NewNop(),
		WithAuditRecorder(recorder, []string{"AuditedEvent"}),
	)

	handler := newTestHandler("AuditedEvent")
	bus.Subscribe(handler, "AuditedEvent")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("AuditedEvent")))
	assert.Len(t, handler.getHandled(), 1)
}

func TestInMemoryEventBus_AuditWrittenBeforeDispatch(t *testing.T) {
	recorder := &testRecorder{}
	bus := NewInMemoryEventBus(zap.NewNop(),
		WithAuditRecorder(recorder, []string{"AuditedEvent"}),
	)

	var sawRecord atomic.Bool
	bus.Subscribe(shared.EventHandlerFunc(func(ctx context.Context, event shared.DomainEvent) error {
		sawRecord.Store(len(recorder.getEntries()) == 1)
		return nil
	}), "AuditedEvent")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("AuditedEvent")))
	assert.True(t, sawRecord.Load())
}

func TestInMemoryEventBus_Automation_RunsAfterSubscribers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	var order []string
	var mu sync.Mutex
	record := func(name string) {
		mu.Lock()
		defer mu.Unlock()
		order = append(order, name)
	}

	bus.Subscribe(shared.EventHandlerFunc(func(ctx context.Context, event shared.DomainEvent) error {
		record("subscriber")
		return nil
	}), "TestEvent")
	bus.RegisterAutomation("TestEvent", shared.EventHandlerFunc(func(ctx context.Context, event shared.DomainEvent) error {
		record("automation")
		return nil
	}))

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("TestEvent")))
	require.Equal(t, []string{"subscriber", "automation"}, order)
}

func TestInMemoryEventBus_Automation_FailureIsIsolated(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	bus.RegisterAutomation("TestEvent", shared.EventHandlerFunc(func(ctx context.Context, event shared.DomainEvent) error {
		return errors.New("automation failed")
	}))

	sysHandler := newTestHandler(shared.EventTypeSystemError)
	bus.Subscribe(sysHandler, shared.EventTypeSystemError)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("TestEvent")))
	assert.Len(t, sysHandler.getHandled(), 1)
}

func TestInMemoryEventBus_UnsubscribeDuringDispatch(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	var sub shared.Subscription
	var calls atomic.Int64
	sub = bus.Subscribe(shared.EventHandlerFunc(func(ctx context.Context, event shared.DomainEvent) error {
		calls.Add(1)
		bus.Unsubscribe(sub)
		return nil
	}), "TestEvent")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("TestEvent")))
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("TestEvent")))
	assert.Equal(t, int64(1), calls.Load())
}

func TestInMemoryEventBus_History(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	for i := 0; i < 3; i++ {
		require.NoError(t, bus.Publish(context.Background(), newTestEvent("EventA")))
	}
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("EventB")))

	assert.Len(t, bus.History("", 0), 4)
	assert.Len(t, bus.History("EventA", 0), 3)
	assert.Len(t, bus.History("EventA", 2), 2)
	assert.Len(t, bus.History("EventC", 0), 0)
}

func TestInMemoryEventBus_HistoryEvictsOldest(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop(), WithHistoryCapacity(3))

	var ids []string
	for i := 0; i < 5; i++ {
		event := newTestEvent("TestEvent")
		ids = append(ids, event.EventID().String())
		require.NoError(t, bus.Publish(context.Background(), event))
	}

	entries := bus.History("TestEvent", 0)
	require.Len(t, entries, 3)
	assert.Equal(t, ids[2], entries[0].EventID)
	assert.Equal(t, ids[4], entries[2].EventID)
}

func TestInMemoryEventBus_SlowHandlerDoesNotBlockOtherEvents(t *testing.T) {
	recorder := &testRecorder{}
	bus := NewInMemoryEventBus(zap.NewNop(),
		WithAuditRecorder(recorder, []string{"FastEvent"}),
	)

	slow := newTestHandler("SlowEvent")
	slow.delay = 2 * time.Second
	bus.Subscribe(slow, "SlowEvent")

	fast := newTestHandler("FastEvent")
	bus.Subscribe(fast, "FastEvent")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = bus.Publish(context.Background(), newTestEvent("SlowEvent"))
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		var inner sync.WaitGroup
		for i := 0; i < 50; i++ {
			inner.Add(1)
			go func() {
				defer inner.Done()
				_ = bus.Publish(context.Background(), newTestEvent("FastEvent"))
			}()
		}
		inner.Wait()
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("concurrent emissions blocked behind a slow handler")
	}

	assert.Len(t, fast.getHandled(), 50)
	assert.Len(t, recorder.getEntries(), 50)
	wg.Wait()
}

func TestInMemoryEventBus_HandlerTimeout(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop(),
		WithHandlerTimeout(50*time.Millisecond),
	)

	stuck := newTestHandler("TestEvent")
	stuck.delay = time.Minute
	bus.Subscribe(stuck, "TestEvent")

	start := time.Now()
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("TestEvent")))
	assert.Less(t, time.Since(start), time.Second)
}

func TestInMemoryEventBus_StopWaitsForHandlers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, bus.Start(context.Background()))

	handler := newTestHandler("TestEvent")
	handler.delay = 50 * time.Millisecond
	bus.Subscribe(handler, "TestEvent")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = bus.Publish(context.Background(), newTestEvent("TestEvent"))
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, bus.Stop(context.Background()))
	wg.Wait()

	assert.Len(t, handler.getHandled(), 1)
}

func TestInMemoryEventBus_ConcurrentSubscribeAndPublish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			sub := bus.Subscribe(newTestHandler("TestEvent"), "TestEvent")
			if i%2 == 0 {
				bus.Unsubscribe(sub)
			}
		}(i)
		go func() {
			defer wg.Done()
			_ = bus.Publish(context.Background(), newTestEvent("TestEvent"))
		}()
	}
	wg.Wait()
}

func TestAuditAllowList_ContainsBusinessCriticalTypes(t *testing.T) {
	allowed := AuditAllowList()
	require.NotEmpty(t, allowed)

	seen := make(map[string]bool)
	for _, eventType := range allowed {
		require.False(t, seen[eventType], fmt.Sprintf("duplicate allow-list entry %s", eventType))
		seen[eventType] = true
	}

	assert.True(t, seen["QuoteAccepted"])
	assert.True(t, seen["OrderCompleted"])
	assert.True(t, seen["InvoicePaid"])
	assert.True(t, seen["StockAdjusted"])
	assert.False(t, seen[shared.EventTypeSystemError])
}
