package event

import (
	"sync"

	"github.com/handwerkos/backend/internal/domain/shared"
)

// DefaultHistoryCapacity bounds the in-memory emission history.
const DefaultHistoryCapacity = 200

// historyBuffer is a bounded ring of recorded emissions. The oldest entry
// is evicted once capacity is reached.
type historyBuffer struct {
	mu       sync.RWMutex
	capacity int
	entries  []shared.HistoryEntry
	start    int
	size     int
}

func newHistoryBuffer(capacity int) *historyBuffer {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &historyBuffer{
		capacity: capacity,
		entries:  make([]shared.HistoryEntry, capacity),
	}
}

func (h *historyBuffer) append(event shared.DomainEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	idx := (h.start + h.size) % h.capacity
	h.entries[idx] = shared.HistoryEntry{
		EventType:  event.EventType(),
		EventID:    event.EventID().String(),
		OccurredAt: event.OccurredAt(),
		Event:      event,
	}
	if h.size < h.capacity {
		h.size++
	} else {
		h.start = (h.start + 1) % h.capacity
	}
}

// recent returns matching entries oldest-first, at most limit. An empty
// eventType matches all; limit <= 0 returns everything retained. Callers
// receive a copy and cannot mutate the buffer.
func (h *historyBuffer) recent(eventType string, limit int) []shared.HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	matched := make([]shared.HistoryEntry, 0, h.size)
	for i := 0; i < h.size; i++ {
		entry := h.entries[(h.start+i)%h.capacity]
		if eventType == "" || entry.EventType == eventType {
			matched = append(matched, entry)
		}
	}
	if limit > 0 && len(matched) > limit {
		matched = matched[len(matched)-limit:]
	}
	return matched
}
