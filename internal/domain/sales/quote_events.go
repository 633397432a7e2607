package sales

import (
	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeQuote = "Quote"
	AggregateTypeOffer = "Offer"
)

// Event type constants
const (
	EventTypeQuoteCreated  = "QuoteCreated"
	EventTypeQuoteSent     = "QuoteSent"
	EventTypeQuoteAccepted = "QuoteAccepted"
	EventTypeQuoteRejected = "QuoteRejected"
	EventTypeQuoteExpired  = "QuoteExpired"
)

// QuoteItemInfo represents line item information carried in events
type QuoteItemInfo struct {
	ItemID      uuid.UUID       `json:"item_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

func quoteItemInfos(quote *Quote) []QuoteItemInfo {
	items := make([]QuoteItemInfo, len(quote.Items))
	for i, item := range quote.Items {
		items[i] = QuoteItemInfo{
			ItemID:      item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}
	return items
}

// QuoteCreatedEvent is raised when a new quote is created
type QuoteCreatedEvent struct {
	shared.BaseDomainEvent
	QuoteID      uuid.UUID `json:"quote_id"`
	QuoteNumber  string    `json:"quote_number"`
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
}

// NewQuoteCreatedEvent creates a new QuoteCreatedEvent
func NewQuoteCreatedEvent(quote *Quote) *QuoteCreatedEvent {
	return &QuoteCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteCreated, AggregateTypeQuote, quote.ID, quote.CompanyID),
		QuoteID:         quote.ID,
		QuoteNumber:     quote.QuoteNumber,
		CustomerID:      quote.CustomerID,
		CustomerName:    quote.CustomerName,
	}
}

// EventType returns the event type name
func (e *QuoteCreatedEvent) EventType() string {
	return EventTypeQuoteCreated
}

// QuoteSentEvent is raised when a quote is sent to the customer
type QuoteSentEvent struct {
	shared.BaseDomainEvent
	QuoteID     uuid.UUID       `json:"quote_id"`
	QuoteNumber string          `json:"quote_number"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	TotalNet    decimal.Decimal `json:"total_net"`
	TotalGross  decimal.Decimal `json:"total_gross"`
}

// NewQuoteSentEvent creates a new QuoteSentEvent
func NewQuoteSentEvent(quote *Quote) *QuoteSentEvent {
	return &QuoteSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteSent, AggregateTypeQuote, quote.ID, quote.CompanyID),
		QuoteID:         quote.ID,
		QuoteNumber:     quote.QuoteNumber,
		CustomerID:      quote.CustomerID,
		TotalNet:        quote.TotalNet,
		TotalGross:      quote.TotalGross,
	}
}

// EventType returns the event type name
func (e *QuoteSentEvent) EventType() string {
	return EventTypeQuoteSent
}

// QuoteAcceptedEvent is raised after a quote has been accepted and its
// follow-up order created. It carries both sides of the workflow so
// downstream automations need no extra lookups.
type QuoteAcceptedEvent struct {
	shared.BaseDomainEvent
	QuoteID      uuid.UUID       `json:"quote_id"`
	QuoteNumber  string          `json:"quote_number"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	OrderID      uuid.UUID       `json:"order_id"`
	OrderNumber  string          `json:"order_number"`
	Items        []QuoteItemInfo `json:"items"`
	TotalNet     decimal.Decimal `json:"total_net"`
	TotalGross   decimal.Decimal `json:"total_gross"`
}

// NewQuoteAcceptedEvent creates a new QuoteAcceptedEvent
func NewQuoteAcceptedEvent(quote *Quote, orderID uuid.UUID, orderNumber string) *QuoteAcceptedEvent {
	return &QuoteAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteAccepted, AggregateTypeQuote, quote.ID, quote.CompanyID),
		QuoteID:         quote.ID,
		QuoteNumber:     quote.QuoteNumber,
		CustomerID:      quote.CustomerID,
		CustomerName:    quote.CustomerName,
		OrderID:         orderID,
		OrderNumber:     orderNumber,
		Items:           quoteItemInfos(quote),
		TotalNet:        quote.TotalNet,
		TotalGross:      quote.TotalGross,
	}
}

// EventType returns the event type name
func (e *QuoteAcceptedEvent) EventType() string {
	return EventTypeQuoteAccepted
}

// QuoteRejectedEvent is raised when a quote is rejected by the customer
type QuoteRejectedEvent struct {
	shared.BaseDomainEvent
	QuoteID      uuid.UUID `json:"quote_id"`
	QuoteNumber  string    `json:"quote_number"`
	CustomerID   uuid.UUID `json:"customer_id"`
	RejectReason string    `json:"reject_reason"`
}

// NewQuoteRejectedEvent creates a new QuoteRejectedEvent
func NewQuoteRejectedEvent(quote *Quote) *QuoteRejectedEvent {
	return &QuoteRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteRejected, AggregateTypeQuote, quote.ID, quote.CompanyID),
		QuoteID:         quote.ID,
		QuoteNumber:     quote.QuoteNumber,
		CustomerID:      quote.CustomerID,
		RejectReason:    quote.RejectReason,
	}
}

// EventType returns the event type name
func (e *QuoteRejectedEvent) EventType() string {
	return EventTypeQuoteRejected
}

// QuoteExpiredEvent is raised when a sent quote passes its validity date
type QuoteExpiredEvent struct {
	shared.BaseDomainEvent
	QuoteID     uuid.UUID `json:"quote_id"`
	QuoteNumber string    `json:"quote_number"`
	CustomerID  uuid.UUID `json:"customer_id"`
}

// NewQuoteExpiredEvent creates a new QuoteExpiredEvent
func NewQuoteExpiredEvent(quote *Quote) *QuoteExpiredEvent {
	return &QuoteExpiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteExpired, AggregateTypeQuote, quote.ID, quote.CompanyID),
		QuoteID:         quote.ID,
		QuoteNumber:     quote.QuoteNumber,
		CustomerID:      quote.CustomerID,
	}
}

// EventType returns the event type name
func (e *QuoteExpiredEvent) EventType() string {
	return EventTypeQuoteExpired
}
