package sales

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OfferStatus represents the status of an offer
type OfferStatus string

const (
	OfferStatusDraft    OfferStatus = "DRAFT"
	OfferStatusSent     OfferStatus = "SENT"
	OfferStatusAccepted OfferStatus = "ACCEPTED"
	OfferStatusRejected OfferStatus = "REJECTED"
)

// IsValid checks if the status is a valid OfferStatus
func (s OfferStatus) IsValid() bool {
	switch s {
	case OfferStatusDraft, OfferStatusSent, OfferStatusAccepted, OfferStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of OfferStatus
func (s OfferStatus) String() string {
	return string(s)
}

// LegalTransitions returns the statuses this status may move to
func (s OfferStatus) LegalTransitions() []OfferStatus {
	switch s {
	case OfferStatusDraft:
		return []OfferStatus{OfferStatusSent}
	case OfferStatusSent:
		return []OfferStatus{OfferStatusAccepted, OfferStatusRejected}
	}
	return nil
}

// CanTransitionTo checks if the status can transition to the target status
func (s OfferStatus) CanTransitionTo(target OfferStatus) bool {
	for _, t := range s.LegalTransitions() {
		if t == target {
			return true
		}
	}
	return false
}

func offerTransitionError(from, to OfferStatus) *shared.DomainError {
	legal := from.LegalTransitions()
	names := make([]string, len(legal))
	for i, l := range legal {
		names[i] = l.String()
	}
	return shared.NewInvalidTransition("Offer", from.String(), to.String(), names)
}

// OfferTargets holds the calculation behind an offer: planned effort,
// planned material cost and the margin applied on top. It is a proper
// sub-entity, persisted alongside the offer rather than serialized into a
// free-text field.
type OfferTargets struct {
	PlannedHours        decimal.Decimal `json:"planned_hours"`
	HourlyRate          decimal.Decimal `json:"hourly_rate"`
	PlannedMaterialCost decimal.Decimal `json:"planned_material_cost"`
	MarginPercent       decimal.Decimal `json:"margin_percent"` // e.g. 15 for 15%
}

// Validate checks the targets for plausibility
func (t OfferTargets) Validate() error {
	if t.PlannedHours.IsNegative() {
		return shared.NewDomainError("INVALID_TARGETS", "Planned hours cannot be negative")
	}
	if t.HourlyRate.IsNegative() {
		return shared.NewDomainError("INVALID_TARGETS", "Hourly rate cannot be negative")
	}
	if t.PlannedMaterialCost.IsNegative() {
		return shared.NewDomainError("INVALID_TARGETS", "Planned material cost cannot be negative")
	}
	if t.MarginPercent.IsNegative() {
		return shared.NewDomainError("INVALID_TARGETS", "Margin cannot be negative")
	}
	return nil
}

// PlannedCost returns labor plus material cost before margin
func (t OfferTargets) PlannedCost() decimal.Decimal {
	return t.PlannedHours.Mul(t.HourlyRate).Add(t.PlannedMaterialCost)
}

// TargetPrice returns the planned cost with margin applied
func (t OfferTargets) TargetPrice() decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	factor := hundred.Add(t.MarginPercent).Div(hundred)
	return t.PlannedCost().Mul(factor).RoundBank(2)
}

// OfferItem represents a line item in an offer
type OfferItem struct {
	ID          uuid.UUID
	OfferID     uuid.UUID
	Position    int
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOfferItem creates a new offer line item
func NewOfferItem(offerID uuid.UUID, position int, description string, quantity decimal.Decimal, unitPrice valueobject.Money) (*OfferItem, error) {
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
	return &OfferItem{
		ID:          uuid.New(),
		OfferID:     offerID,
		Position:    position,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		Amount:      quantity.Mul(unitPrice.Amount()),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Offer is the richer variant of a quote: it carries a calculation
// (targets) next to the customer-facing line items. Sending an offer locks
// it and freezes the totals as a snapshot of what the customer saw.
type Offer struct {
	shared.CompanyAggregateRoot
	OfferNumber      string
	CustomerID       uuid.UUID
	CustomerName     string
	Title            string
	Items            []OfferItem
	Targets          OfferTargets `gorm:"embedded;embeddedPrefix:target_"`
	TaxRate          decimal.Decimal
	TotalNet         decimal.Decimal
	TotalGross       decimal.Decimal
	SnapshotNet      decimal.Decimal // frozen at send time
	SnapshotGross    decimal.Decimal // frozen at send time
	Locked           bool
	Status           OfferStatus
	SentAt           *time.Time
	AcceptedAt       *time.Time
	RejectedAt       *time.Time
}

// NewOffer creates a new offer in DRAFT status
func NewOffer(companyID uuid.UUID, offerNumber string, customerID uuid.UUID, customerName, title string) (*Offer, error) {
	if offerNumber == "" {
		return nil, shared.NewDomainError("INVALID_OFFER_NUMBER", "Offer number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	offer := &Offer{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		OfferNumber:          offerNumber,
		CustomerID:           customerID,
		CustomerName:         customerName,
		Title:                title,
		Items:                make([]OfferItem, 0),
		TaxRate:              valueobject.DefaultTaxRate,
		TotalNet:             decimal.Zero,
		TotalGross:           decimal.Zero,
		Status:               OfferStatusDraft,
	}

	offer.AddDomainEvent(NewOfferCreatedEvent(offer))

	return offer, nil
}

func (o *Offer) guardUnlocked(action string) error {
	if o.Locked {
		return shared.NewBusinessRuleViolation("offer_locked",
			fmt.Sprintf("Cannot %s: offer is locked since it was sent", action),
			map[string]interface{}{"status": o.Status.String(), "sent_at": o.SentAt})
	}
	return nil
}

// AddItem adds a line item. Only allowed while unlocked.
func (o *Offer) AddItem(description string, quantity decimal.Decimal, unitPrice valueobject.Money) (*OfferItem, error) {
	if err := o.guardUnlocked("add items"); err != nil {
		return nil, err
	}

	item, err := NewOfferItem(o.ID, len(o.Items)+1, description, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.RecalculateTotals()
	o.Touch()

	return item, nil
}

// RemoveItem removes a line item. Only allowed while unlocked.
func (o *Offer) RemoveItem(itemID uuid.UUID) error {
	if err := o.guardUnlocked("remove items"); err != nil {
		return err
	}

	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			for i := range o.Items {
				o.Items[i].Position = i + 1
			}
			o.RecalculateTotals()
			o.Touch()
			return nil
		}
	}

	return shared.NewNotFoundError("Offer item")
}

// SetTargets replaces the offer calculation. Only allowed while unlocked.
func (o *Offer) SetTargets(targets OfferTargets) error {
	if err := o.guardUnlocked("change targets"); err != nil {
		return err
	}
	if err := targets.Validate(); err != nil {
		return err
	}
	o.Targets = targets
	o.Touch()
	return nil
}

// Send locks the offer, freezes the total snapshot and transitions to SENT
func (o *Offer) Send() error {
	if !o.Status.CanTransitionTo(OfferStatusSent) {
		return offerTransitionError(o.Status, OfferStatusSent)
	}
	if len(o.Items) == 0 {
		return shared.NewBusinessRuleViolation("offer_needs_items",
			"Cannot send an offer without line items", nil)
	}

	now := time.Now()
	o.RecalculateTotals()
	o.SnapshotNet = o.TotalNet
	o.SnapshotGross = o.TotalGross
	o.Locked = true
	o.Status = OfferStatusSent
	o.SentAt = &now
	o.Touch()

	o.AddDomainEvent(NewOfferSentEvent(o))

	return nil
}

// Accept transitions the offer from SENT to ACCEPTED
func (o *Offer) Accept() error {
	if !o.Status.CanTransitionTo(OfferStatusAccepted) {
		return offerTransitionError(o.Status, OfferStatusAccepted)
	}

	now := time.Now()
	o.Status = OfferStatusAccepted
	o.AcceptedAt = &now
	o.Touch()

	o.AddDomainEvent(NewOfferAcceptedEvent(o))

	return nil
}

// Reject transitions the offer from SENT to REJECTED
func (o *Offer) Reject() error {
	if !o.Status.CanTransitionTo(OfferStatusRejected) {
		return offerTransitionError(o.Status, OfferStatusRejected)
	}

	now := time.Now()
	o.Status = OfferStatusRejected
	o.RejectedAt = &now
	o.Touch()

	o.AddDomainEvent(NewOfferRejectedEvent(o))

	return nil
}

// RecalculateTotals recomputes net and gross totals from the line items
func (o *Offer) RecalculateTotals() {
	net := decimal.Zero
	for _, item := range o.Items {
		net = net.Add(item.Amount)
	}
	o.TotalNet = net
	o.TotalGross = valueobject.NewMoneyEUR(net).WithTax(o.TaxRate).Amount()
}
