package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
)

// Entry is a single immutable audit record written for auditable event
// types before they are dispatched to subscribers.
type Entry struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	EventID       uuid.UUID `gorm:"type:uuid;index"`
	EventType     string    `gorm:"index"`
	AggregateType string
	AggregateID   uuid.UUID `gorm:"type:uuid;index"`
	CompanyID     uuid.UUID `gorm:"type:uuid;index"`
	OccurredAt    time.Time
	RecordedAt    time.Time
	Payload       json.RawMessage `gorm:"type:jsonb"`
}

// NewEntry builds an audit record from a domain event. The payload is the
// event serialized as JSON; a serialization failure still yields a record
// with an empty payload so the trail never loses the occurrence itself.
func NewEntry(event shared.DomainEvent) Entry {
	payload, err := json.Marshal(event)
	if err != nil {
		payload = nil
	}
	return Entry{
		ID:            uuid.New(),
		EventID:       event.EventID(),
		EventType:     event.EventType(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID(),
		CompanyID:     event.CompanyID(),
		OccurredAt:    event.OccurredAt(),
		RecordedAt:    time.Now(),
		Payload:       payload,
	}
}

// Recorder persists audit entries. The event bus calls it synchronously
// for auditable events; implementations must tolerate high write rates.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// Repository defines read access to the audit trail. Entries are append
// only; there is no update or delete.
type Repository interface {
	Recorder
	FindByAggregate(ctx context.Context, companyID, aggregateID uuid.UUID) ([]Entry, error)
	FindByEventType(ctx context.Context, companyID uuid.UUID, eventType string, filter shared.Filter) (shared.Paginated[Entry], error)
}
