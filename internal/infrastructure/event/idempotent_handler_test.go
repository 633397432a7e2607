package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubIdempotencyStore is a map-backed IdempotencyStore for tests
type stubIdempotencyStore struct {
	mu        sync.Mutex
	processed map[string]bool
	err       error
}

func newStubIdempotencyStore() *stubIdempotencyStore {
	return &stubIdempotencyStore{processed: make(map[string]bool)}
}

func (s *stubIdempotencyStore) MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	if s.processed[eventID] {
		return false, nil
	}
	s.processed[eventID] = true
	return true, nil
}

func (s *stubIdempotencyStore) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processed[eventID], nil
}

func (s *stubIdempotencyStore) Close() error { return nil }

func TestIdempotentHandler_ProcessesOnce(t *testing.T) {
	store := newStubIdempotencyStore()
	inner := newTestHandler("TestEvent")
	handler := NewIdempotentHandler(inner, store, zap.NewNop())

	event := newTestEvent("TestEvent")
	require.NoError(t, handler.Handle(context.Background(), event))
	require.NoError(t, handler.Handle(context.Background(), event))
	require.NoError(t, handler.Handle(context.Background(), event))

	assert.Len(t, inner.getHandled(), 1)
	stats := handler.Metrics().Stats()
	assert.Equal(t, int64(1), stats.EventsProcessed)
	assert.Equal(t, int64(2), stats.EventsDuplicate)
}

func TestIdempotentHandler_DistinctEventsAllProcessed(t *testing.T) {
	store := newStubIdempotencyStore()
	inner := newTestHandler("TestEvent")
	handler := NewIdempotentHandler(inner, store, zap.NewNop())

	require.NoError(t, handler.Handle(context.Background(), newTestEvent("TestEvent")))
	require.NoError(t, handler.Handle(context.Background(), newTestEvent("TestEvent")))

	assert.Len(t, inner.getHandled(), 2)
}

func TestIdempotentHandler_StoreFailureProcessesAnyway(t *testing.T) {
	store := newStubIdempotencyStore()
	store.err = errors.New("store down")
	inner := newTestHandler("TestEvent")
	handler := NewIdempotentHandler(inner, store, zap.NewNop())

	require.NoError(t, handler.Handle(context.Background(), newTestEvent("TestEvent")))
	assert.Len(t, inner.getHandled(), 1)
}

func TestIdempotentHandler_HandlerErrorKeepsMark(t *testing.T) {
	store := newStubIdempotencyStore()
	inner := newTestHandler("TestEvent")
	inner.err = errors.New("boom")
	handler := NewIdempotentHandler(inner, store, zap.NewNop())

	event := newTestEvent("TestEvent")
	require.Error(t, handler.Handle(context.Background(), event))

	// the mark stays until TTL expiry, so an immediate retry is skipped
	require.NoError(t, handler.Handle(context.Background(), event))
	assert.Len(t, inner.getHandled(), 1)
}

func TestIdempotentHandler_Disabled(t *testing.T) {
	store := newStubIdempotencyStore()
	inner := newTestHandler("TestEvent")
	handler := NewIdempotentHandler(inner, store, zap.NewNop(),
		WithIdempotencyConfig(shared.IdempotencyConfig{Enabled: false}),
	)

	event := newTestEvent("TestEvent")
	require.NoError(t, handler.Handle(context.Background(), event))
	require.NoError(t, handler.Handle(context.Background(), event))

	assert.Len(t, inner.getHandled(), 2)
}
