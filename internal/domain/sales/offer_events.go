package sales

import (
	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event type constants
const (
	EventTypeOfferCreated  = "OfferCreated"
	EventTypeOfferSent     = "OfferSent"
	EventTypeOfferAccepted = "OfferAccepted"
	EventTypeOfferRejected = "OfferRejected"
)

// OfferCreatedEvent is raised when a new offer is created
type OfferCreatedEvent struct {
	shared.BaseDomainEvent
	OfferID      uuid.UUID `json:"offer_id"`
	OfferNumber  string    `json:"offer_number"`
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
}

// NewOfferCreatedEvent creates a new OfferCreatedEvent
func NewOfferCreatedEvent(offer *Offer) *OfferCreatedEvent {
	return &OfferCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOfferCreated, AggregateTypeOffer, offer.ID, offer.CompanyID),
		OfferID:         offer.ID,
		OfferNumber:     offer.OfferNumber,
		CustomerID:      offer.CustomerID,
		CustomerName:    offer.CustomerName,
	}
}

// EventType returns the event type name
func (e *OfferCreatedEvent) EventType() string {
	return EventTypeOfferCreated
}

// OfferSentEvent is raised when an offer is sent and locked.
// It carries the frozen snapshot totals.
type OfferSentEvent struct {
	shared.BaseDomainEvent
	OfferID       uuid.UUID       `json:"offer_id"`
	OfferNumber   string          `json:"offer_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	SnapshotNet   decimal.Decimal `json:"snapshot_net"`
	SnapshotGross decimal.Decimal `json:"snapshot_gross"`
}

// NewOfferSentEvent creates a new OfferSentEvent
func NewOfferSentEvent(offer *Offer) *OfferSentEvent {
	return &OfferSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOfferSent, AggregateTypeOffer, offer.ID, offer.CompanyID),
		OfferID:         offer.ID,
		OfferNumber:     offer.OfferNumber,
		CustomerID:      offer.CustomerID,
		SnapshotNet:     offer.SnapshotNet,
		SnapshotGross:   offer.SnapshotGross,
	}
}

// EventType returns the event type name
func (e *OfferSentEvent) EventType() string {
	return EventTypeOfferSent
}

// OfferAcceptedEvent is raised when an offer is accepted by the customer
type OfferAcceptedEvent struct {
	shared.BaseDomainEvent
	OfferID      uuid.UUID       `json:"offer_id"`
	OfferNumber  string          `json:"offer_number"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	SnapshotNet  decimal.Decimal `json:"snapshot_net"`
}

// NewOfferAcceptedEvent creates a new OfferAcceptedEvent
func NewOfferAcceptedEvent(offer *Offer) *OfferAcceptedEvent {
	return &OfferAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOfferAccepted, AggregateTypeOffer, offer.ID, offer.CompanyID),
		OfferID:         offer.ID,
		OfferNumber:     offer.OfferNumber,
		CustomerID:      offer.CustomerID,
		CustomerName:    offer.CustomerName,
		SnapshotNet:     offer.SnapshotNet,
	}
}

// EventType returns the event type name
func (e *OfferAcceptedEvent) EventType() string {
	return EventTypeOfferAccepted
}

// OfferRejectedEvent is raised when an offer is rejected
type OfferRejectedEvent struct {
	shared.BaseDomainEvent
	OfferID     uuid.UUID `json:"offer_id"`
	OfferNumber string    `json:"offer_number"`
	CustomerID  uuid.UUID `json:"customer_id"`
}

// NewOfferRejectedEvent creates a new OfferRejectedEvent
func NewOfferRejectedEvent(offer *Offer) *OfferRejectedEvent {
	return &OfferRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOfferRejected, AggregateTypeOffer, offer.ID, offer.CompanyID),
		OfferID:         offer.ID,
		OfferNumber:     offer.OfferNumber,
		CustomerID:      offer.CustomerID,
	}
}

// EventType returns the event type name
func (e *OfferRejectedEvent) EventType() string {
	return EventTypeOfferRejected
}
