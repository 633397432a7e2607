package sales

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// QuoteStatus represents the status of a quote
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "DRAFT"
	QuoteStatusSent     QuoteStatus = "SENT"
	QuoteStatusAccepted QuoteStatus = "ACCEPTED"
	QuoteStatusRejected QuoteStatus = "REJECTED"
	QuoteStatusExpired  QuoteStatus = "EXPIRED"
)

// IsValid checks if the status is a valid QuoteStatus
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired:
		return true
	}
	return false
}

// String returns the string representation of QuoteStatus
func (s QuoteStatus) String() string {
	return string(s)
}

// LegalTransitions returns the statuses this status may move to.
// Accepted, rejected and expired are terminal.
func (s QuoteStatus) LegalTransitions() []QuoteStatus {
	switch s {
	case QuoteStatusDraft:
		return []QuoteStatus{QuoteStatusSent}
	case QuoteStatusSent:
		return []QuoteStatus{QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired}
	}
	return nil
}

// CanTransitionTo checks if the status can transition to the target status
func (s QuoteStatus) CanTransitionTo(target QuoteStatus) bool {
	for _, t := range s.LegalTransitions() {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are legal
func (s QuoteStatus) IsTerminal() bool {
	return len(s.LegalTransitions()) == 0
}

func quoteTransitionError(from, to QuoteStatus) *shared.DomainError {
	legal := from.LegalTransitions()
	names := make([]string, len(legal))
	for i, l := range legal {
		names[i] = l.String()
	}
	return shared.NewInvalidTransition("Quote", from.String(), to.String(), names)
}

// QuoteItem represents a line item in a quote
type QuoteItem struct {
	ID          uuid.UUID
	QuoteID     uuid.UUID
	Position    int // display order within the quote
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal // Quantity * UnitPrice
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewQuoteItem creates a new quote line item
func NewQuoteItem(quoteID uuid.UUID, position int, description string, quantity decimal.Decimal, unitPrice valueobject.Money) (*QuoteItem, error) {
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
	return &QuoteItem{
		ID:          uuid.New(),
		QuoteID:     quoteID,
		Position:    position,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		Amount:      quantity.Mul(unitPrice.Amount()),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateQuantity updates the item quantity and recalculates the amount
func (i *QuoteItem) UpdateQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	i.Quantity = quantity
	i.Amount = quantity.Mul(i.UnitPrice)
	i.UpdatedAt = time.Now()
	return nil
}

// UpdateUnitPrice updates the unit price and recalculates the amount
func (i *QuoteItem) UpdateUnitPrice(unitPrice valueobject.Money) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	i.UnitPrice = unitPrice.Amount()
	i.Amount = i.Quantity.Mul(i.UnitPrice)
	i.UpdatedAt = time.Now()
	return nil
}

// Quote represents a quote aggregate root.
// A quote is the proposal stage of a piece of work: once accepted it becomes
// the source of an order. The quote number is frozen when the quote is sent
// and the whole document is read-only once a terminal status is reached.
type Quote struct {
	shared.CompanyAggregateRoot
	QuoteNumber  string
	CustomerID   uuid.UUID
	CustomerName string
	Title        string
	Items        []QuoteItem
	TaxRate      decimal.Decimal // e.g. 0.19
	TotalNet     decimal.Decimal
	TotalGross   decimal.Decimal
	Status       QuoteStatus
	ValidUntil   *time.Time
	SentAt       *time.Time
	AcceptedAt   *time.Time
	RejectedAt   *time.Time
	RejectReason string
}

// NewQuote creates a new quote in DRAFT status
func NewQuote(companyID uuid.UUID, quoteNumber string, customerID uuid.UUID, customerName, title string) (*Quote, error) {
	if quoteNumber == "" {
		return nil, shared.NewDomainError("INVALID_QUOTE_NUMBER", "Quote number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	quote := &Quote{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		QuoteNumber:          quoteNumber,
		CustomerID:           customerID,
		CustomerName:         customerName,
		Title:                title,
		Items:                make([]QuoteItem, 0),
		TaxRate:              valueobject.DefaultTaxRate,
		TotalNet:             decimal.Zero,
		TotalGross:           decimal.Zero,
		Status:               QuoteStatusDraft,
	}

	quote.AddDomainEvent(NewQuoteCreatedEvent(quote))

	return quote, nil
}

// CanModify returns true while the quote content may still change
func (q *Quote) CanModify() bool {
	return q.Status == QuoteStatusDraft
}

// AddItem adds a line item. Only allowed in DRAFT status.
func (q *Quote) AddItem(description string, quantity decimal.Decimal, unitPrice valueobject.Money) (*QuoteItem, error) {
	if !q.CanModify() {
		return nil, shared.NewBusinessRuleViolation("quote_immutable",
			fmt.Sprintf("Cannot add items to a quote in %s status", q.Status),
			map[string]interface{}{"status": q.Status.String()})
	}

	item, err := NewQuoteItem(q.ID, len(q.Items)+1, description, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	q.Items = append(q.Items, *item)
	q.RecalculateTotals()
	q.Touch()

	return item, nil
}

// UpdateItemQuantity updates the quantity of an existing item. DRAFT only.
func (q *Quote) UpdateItemQuantity(itemID uuid.UUID, quantity decimal.Decimal) error {
	if !q.CanModify() {
		return shared.NewBusinessRuleViolation("quote_immutable",
			fmt.Sprintf("Cannot update items of a quote in %s status", q.Status),
			map[string]interface{}{"status": q.Status.String()})
	}

	for idx := range q.Items {
		if q.Items[idx].ID == itemID {
			if err := q.Items[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			q.RecalculateTotals()
			q.Touch()
			return nil
		}
	}

	return shared.NewNotFoundError("Quote item")
}

// RemoveItem removes a line item. DRAFT only.
func (q *Quote) RemoveItem(itemID uuid.UUID) error {
	if !q.CanModify() {
		return shared.NewBusinessRuleViolation("quote_immutable",
			fmt.Sprintf("Cannot remove items from a quote in %s status", q.Status),
			map[string]interface{}{"status": q.Status.String()})
	}

	for idx, item := range q.Items {
		if item.ID == itemID {
			q.Items = append(q.Items[:idx], q.Items[idx+1:]...)
			for i := range q.Items {
				q.Items[i].Position = i + 1
			}
			q.RecalculateTotals()
			q.Touch()
			return nil
		}
	}

	return shared.NewNotFoundError("Quote item")
}

// SetQuoteNumber changes the quote number. The number is immutable once sent.
func (q *Quote) SetQuoteNumber(number string) error {
	if q.Status != QuoteStatusDraft {
		return shared.NewBusinessRuleViolation("quote_number_frozen",
			"Quote number is immutable once the quote has been sent",
			map[string]interface{}{
				"status":           q.Status.String(),
				"current_number":   q.QuoteNumber,
				"attempted_number": number,
			})
	}
	if number == "" {
		return shared.NewDomainError("INVALID_QUOTE_NUMBER", "Quote number cannot be empty")
	}
	q.QuoteNumber = number
	q.Touch()
	return nil
}

// SetValidUntil sets the validity date. DRAFT only.
func (q *Quote) SetValidUntil(validUntil time.Time) error {
	if !q.CanModify() {
		return shared.NewBusinessRuleViolation("quote_immutable",
			fmt.Sprintf("Cannot change validity of a quote in %s status", q.Status),
			map[string]interface{}{"status": q.Status.String()})
	}
	q.ValidUntil = &validUntil
	q.Touch()
	return nil
}

// SetTaxRate sets the tax rate. DRAFT only.
func (q *Quote) SetTaxRate(rate decimal.Decimal) error {
	if !q.CanModify() {
		return shared.NewBusinessRuleViolation("quote_immutable",
			fmt.Sprintf("Cannot change tax rate of a quote in %s status", q.Status),
			map[string]interface{}{"status": q.Status.String()})
	}
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}
	q.TaxRate = rate
	q.RecalculateTotals()
	q.Touch()
	return nil
}

// Send transitions the quote from DRAFT to SENT.
// Requires at least one line item.
func (q *Quote) Send() error {
	if !q.Status.CanTransitionTo(QuoteStatusSent) {
		return quoteTransitionError(q.Status, QuoteStatusSent)
	}
	if len(q.Items) == 0 {
		return shared.NewBusinessRuleViolation("quote_needs_items",
			"Cannot send a quote without line items", nil)
	}

	now := time.Now()
	q.Status = QuoteStatusSent
	q.SentAt = &now
	q.Touch()

	q.AddDomainEvent(NewQuoteSentEvent(q))

	return nil
}

// Accept transitions the quote from SENT to ACCEPTED and stamps the
// acceptance time. The follow-up order creation and the QuoteAccepted
// emission happen in the application service so both writes share one
// transaction.
func (q *Quote) Accept() error {
	if !q.Status.CanTransitionTo(QuoteStatusAccepted) {
		return quoteTransitionError(q.Status, QuoteStatusAccepted)
	}

	now := time.Now()
	q.Status = QuoteStatusAccepted
	q.AcceptedAt = &now
	q.Touch()

	return nil
}

// Reject transitions the quote from SENT to REJECTED
func (q *Quote) Reject(reason string) error {
	if !q.Status.CanTransitionTo(QuoteStatusRejected) {
		return quoteTransitionError(q.Status, QuoteStatusRejected)
	}

	now := time.Now()
	q.Status = QuoteStatusRejected
	q.RejectedAt = &now
	q.RejectReason = reason
	q.Touch()

	q.AddDomainEvent(NewQuoteRejectedEvent(q))

	return nil
}

// Expire transitions the quote from SENT to EXPIRED once the validity
// date has passed. Driven by the periodic quote sweep.
func (q *Quote) Expire() error {
	if !q.Status.CanTransitionTo(QuoteStatusExpired) {
		return quoteTransitionError(q.Status, QuoteStatusExpired)
	}
	if q.ValidUntil == nil || q.ValidUntil.After(time.Now()) {
		return shared.NewBusinessRuleViolation("quote_not_expired",
			"Quote validity date has not passed yet",
			map[string]interface{}{"valid_until": q.ValidUntil})
	}

	q.Status = QuoteStatusExpired
	q.Touch()

	q.AddDomainEvent(NewQuoteExpiredEvent(q))

	return nil
}

// RecalculateTotals recomputes net and gross totals from the line items.
// Recomputation is idempotent: running it twice without item changes yields
// identical values.
func (q *Quote) RecalculateTotals() {
	net := decimal.Zero
	for _, item := range q.Items {
		net = net.Add(item.Amount)
	}
	q.TotalNet = net
	q.TotalGross = valueobject.NewMoneyEUR(net).WithTax(q.TaxRate).Amount()
}

// IsDraft returns true if the quote is in draft status
func (q *Quote) IsDraft() bool {
	return q.Status == QuoteStatusDraft
}

// IsAccepted returns true if the quote has been accepted
func (q *Quote) IsAccepted() bool {
	return q.Status == QuoteStatusAccepted
}

// ItemCount returns the number of line items
func (q *Quote) ItemCount() int {
	return len(q.Items)
}
