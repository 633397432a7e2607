package work

import (
	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeOrder     = "Order"
	AggregateTypeProject   = "Project"
	AggregateTypeTimesheet = "Timesheet"
)

// Event type constants
const (
	EventTypeOrderCreated   = "OrderCreated"
	EventTypeOrderStarted   = "OrderStarted"
	EventTypeOrderCompleted = "OrderCompleted"
	EventTypeOrderCancelled = "OrderCancelled"
)

// OrderItemInfo represents line item information carried in events
type OrderItemInfo struct {
	ItemID      uuid.UUID       `json:"item_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

func orderItemInfos(order *Order) []OrderItemInfo {
	items := make([]OrderItemInfo, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemInfo{
			ItemID:      item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}
	return items
}

// OrderCreatedEvent is raised when a new order is created
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID  `json:"order_id"`
	OrderNumber  string     `json:"order_number"`
	CustomerID   uuid.UUID  `json:"customer_id"`
	CustomerName string     `json:"customer_name"`
	QuoteID      *uuid.UUID `json:"quote_id,omitempty"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, order.ID, order.CompanyID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		QuoteID:         order.QuoteID,
	}
}

// EventType returns the event type name
func (e *OrderCreatedEvent) EventType() string {
	return EventTypeOrderCreated
}

// OrderStartedEvent is raised when an order moves to IN_PROGRESS.
// ProjectID is always set: starting creates the project when necessary.
type OrderStartedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	CustomerID  uuid.UUID `json:"customer_id"`
	ProjectID   uuid.UUID `json:"project_id"`
}

// NewOrderStartedEvent creates a new OrderStartedEvent
func NewOrderStartedEvent(order *Order) *OrderStartedEvent {
	projectID := uuid.Nil
	if order.ProjectID != nil {
		projectID = *order.ProjectID
	}
	return &OrderStartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStarted, AggregateTypeOrder, order.ID, order.CompanyID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		ProjectID:       projectID,
	}
}

// EventType returns the event type name
func (e *OrderStartedEvent) EventType() string {
	return EventTypeOrderStarted
}

// OrderCompletedEvent is raised when an order is completed.
// It carries the totals so invoice creation needs no extra lookup.
type OrderCompletedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID       `json:"order_id"`
	OrderNumber  string          `json:"order_number"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	ProjectID    *uuid.UUID      `json:"project_id,omitempty"`
	Items        []OrderItemInfo `json:"items"`
	TotalNet     decimal.Decimal `json:"total_net"`
}

// NewOrderCompletedEvent creates a new OrderCompletedEvent
func NewOrderCompletedEvent(order *Order) *OrderCompletedEvent {
	return &OrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCompleted, AggregateTypeOrder, order.ID, order.CompanyID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		ProjectID:       order.ProjectID,
		Items:           orderItemInfos(order),
		TotalNet:        order.TotalNet,
	}
}

// EventType returns the event type name
func (e *OrderCompletedEvent) EventType() string {
	return EventTypeOrderCompleted
}

// OrderCancelledEvent is raised when an order is cancelled
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID  `json:"order_id"`
	OrderNumber  string     `json:"order_number"`
	CustomerID   uuid.UUID  `json:"customer_id"`
	ProjectID    *uuid.UUID `json:"project_id,omitempty"`
	CancelReason string     `json:"cancel_reason"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(order *Order) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, order.ID, order.CompanyID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		ProjectID:       order.ProjectID,
		CancelReason:    order.CancelReason,
	}
}

// EventType returns the event type name
func (e *OrderCancelledEvent) EventType() string {
	return EventTypeOrderCancelled
}
