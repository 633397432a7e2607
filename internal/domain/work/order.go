package work

import (
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusOpen       OrderStatus = "OPEN"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusOpen, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// LegalTransitions returns the statuses this status may move to.
// Completed and cancelled are terminal.
func (s OrderStatus) LegalTransitions() []OrderStatus {
	switch s {
	case OrderStatusOpen:
		return []OrderStatus{OrderStatusInProgress, OrderStatusCancelled}
	case OrderStatusInProgress:
		return []OrderStatus{OrderStatusCompleted, OrderStatusCancelled}
	}
	return nil
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, t := range s.LegalTransitions() {
		if t == target {
			return true
		}
	}
	return false
}

func orderTransitionError(from, to OrderStatus) *shared.DomainError {
	legal := from.LegalTransitions()
	names := make([]string, len(legal))
	for i, l := range legal {
		names[i] = l.String()
	}
	return shared.NewInvalidTransition("Order", from.String(), to.String(), names)
}

// OrderItem represents a line item taken over from an accepted quote or
// entered directly on a standalone order.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	Position    int
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOrderItem creates a new order line item
func NewOrderItem(orderID uuid.UUID, position int, description string, quantity decimal.Decimal, unitPrice valueobject.Money) (*OrderItem, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Item description cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		Position:    position,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		Amount:      quantity.Mul(unitPrice.Amount()),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Order represents the execution stage of a piece of work. Orders are
// created from an accepted quote or standalone; starting an order creates
// and links a project when none exists yet.
type Order struct {
	shared.CompanyAggregateRoot
	OrderNumber  string
	CustomerID   uuid.UUID
	CustomerName string
	Title        string
	QuoteID      *uuid.UUID // set when created from an accepted quote
	ProjectID    *uuid.UUID // set when the order is started
	Items        []OrderItem
	Budget       decimal.Decimal // planned total, seeds the project budget
	TotalNet     decimal.Decimal
	Status       OrderStatus
	StartedAt    *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string
}

// NewOrder creates a new standalone order in OPEN status
func NewOrder(companyID uuid.UUID, orderNumber string, customerID uuid.UUID, customerName, title string) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	order := &Order{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		OrderNumber:          orderNumber,
		CustomerID:           customerID,
		CustomerName:         customerName,
		Title:                title,
		Items:                make([]OrderItem, 0),
		Budget:               decimal.Zero,
		TotalNet:             decimal.Zero,
		Status:               OrderStatusOpen,
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// NewOrderFromQuote creates an order seeded from an accepted quote: same
// customer, the quote's line items and the quote total as budget.
func NewOrderFromQuote(companyID uuid.UUID, orderNumber string, quoteID, customerID uuid.UUID, customerName, title string) (*Order, error) {
	order, err := NewOrder(companyID, orderNumber, customerID, customerName, title)
	if err != nil {
		return nil, err
	}
	order.QuoteID = &quoteID
	return order, nil
}

// AddItem adds a line item. Only allowed in OPEN status.
func (o *Order) AddItem(description string, quantity decimal.Decimal, unitPrice valueobject.Money) (*OrderItem, error) {
	if o.Status != OrderStatusOpen {
		return nil, shared.NewBusinessRuleViolation("order_immutable",
			"Items can only be changed while the order is open",
			map[string]interface{}{"status": o.Status.String()})
	}

	item, err := NewOrderItem(o.ID, len(o.Items)+1, description, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.Touch()

	return item, nil
}

// SetBudget sets the planned total. Only allowed in OPEN status.
func (o *Order) SetBudget(budget decimal.Decimal) error {
	if o.Status != OrderStatusOpen {
		return shared.NewBusinessRuleViolation("order_immutable",
			"Budget can only be changed while the order is open",
			map[string]interface{}{"status": o.Status.String()})
	}
	if budget.IsNegative() {
		return shared.NewDomainError("INVALID_BUDGET", "Budget cannot be negative")
	}
	o.Budget = budget
	o.Touch()
	return nil
}

// Start transitions the order from OPEN to IN_PROGRESS. The caller is
// responsible for creating and linking a project first when none exists;
// the aggregate only enforces that the link is present.
func (o *Order) Start() error {
	if !o.Status.CanTransitionTo(OrderStatusInProgress) {
		if o.Status == OrderStatusInProgress {
			return shared.NewBusinessRuleViolation("order_already_started",
				"Order has already been started",
				map[string]interface{}{"status": o.Status.String()})
		}
		return orderTransitionError(o.Status, OrderStatusInProgress)
	}
	if o.ProjectID == nil {
		return shared.NewBusinessRuleViolation("order_needs_project",
			"Order must be linked to a project before it can be started", nil)
	}

	now := time.Now()
	o.Status = OrderStatusInProgress
	o.StartedAt = &now
	o.Touch()

	o.AddDomainEvent(NewOrderStartedEvent(o))

	return nil
}

// LinkProject links the executing project to the order
func (o *Order) LinkProject(projectID uuid.UUID) error {
	if projectID == uuid.Nil {
		return shared.NewDomainError("INVALID_PROJECT", "Project ID cannot be empty")
	}
	if o.ProjectID != nil && *o.ProjectID != projectID {
		return shared.NewBusinessRuleViolation("order_project_linked",
			"Order is already linked to a different project",
			map[string]interface{}{"linked_project_id": o.ProjectID.String()})
	}
	o.ProjectID = &projectID
	o.Touch()
	return nil
}

// Complete transitions the order from IN_PROGRESS to COMPLETED.
// The linked project is cascaded by the application service.
func (o *Order) Complete() error {
	if !o.Status.CanTransitionTo(OrderStatusCompleted) {
		return orderTransitionError(o.Status, OrderStatusCompleted)
	}

	now := time.Now()
	o.Status = OrderStatusCompleted
	o.CompletedAt = &now
	o.Touch()

	o.AddDomainEvent(NewOrderCompletedEvent(o))

	return nil
}

// Cancel cancels the order. The linked project is cascaded by the
// application service.
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return orderTransitionError(o.Status, OrderStatusCancelled)
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.Touch()

	o.AddDomainEvent(NewOrderCancelledEvent(o))

	return nil
}

func (o *Order) recalculateTotals() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalNet = total
	if o.Budget.IsZero() {
		o.Budget = total
	}
}

// IsOpen returns true if the order has not been started yet
func (o *Order) IsOpen() bool {
	return o.Status == OrderStatusOpen
}

// IsTerminal returns true if the order is completed or cancelled
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}
