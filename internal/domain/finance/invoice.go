package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "DRAFT"
	InvoiceStatusSent    InvoiceStatus = "SENT"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// LegalTransitions returns the statuses this status may move to.
// Paid is terminal; overdue invoices can still be paid.
func (s InvoiceStatus) LegalTransitions() []InvoiceStatus {
	switch s {
	case InvoiceStatusDraft:
		return []InvoiceStatus{InvoiceStatusSent}
	case InvoiceStatusSent:
		return []InvoiceStatus{InvoiceStatusPaid, InvoiceStatusOverdue}
	case InvoiceStatusOverdue:
		return []InvoiceStatus{InvoiceStatusPaid}
	}
	return nil
}

// CanTransitionTo checks if the status can transition to the target status
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	for _, t := range s.LegalTransitions() {
		if t == target {
			return true
		}
	}
	return false
}

func invoiceTransitionError(from, to InvoiceStatus) *shared.DomainError {
	legal := from.LegalTransitions()
	names := make([]string, len(legal))
	for i, l := range legal {
		names[i] = l.String()
	}
	return shared.NewInvalidTransition("Invoice", from.String(), to.String(), names)
}

// Invoice is derived from a completed order or a project. Once paid it is
// immutable.
type Invoice struct {
	shared.CompanyAggregateRoot
	InvoiceNumber string
	CustomerID    uuid.UUID
	CustomerName  string
	OrderID       *uuid.UUID
	ProjectID     *uuid.UUID
	TaxRate       decimal.Decimal
	TotalNet      decimal.Decimal
	TotalGross    decimal.Decimal
	Status        InvoiceStatus
	DueDate       *time.Time
	SentAt        *time.Time
	PaidAt        *time.Time
	OverdueSince  *time.Time
}

// NewInvoice creates a new draft invoice
func NewInvoice(companyID uuid.UUID, invoiceNumber string, customerID uuid.UUID, customerName string, totalNet decimal.Decimal) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if totalNet.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice amount cannot be negative")
	}

	inv := &Invoice{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		InvoiceNumber:        invoiceNumber,
		CustomerID:           customerID,
		CustomerName:         customerName,
		TaxRate:              valueobject.DefaultTaxRate,
		TotalNet:             totalNet,
		Status:               InvoiceStatusDraft,
	}
	inv.recalculateGross()

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

func (i *Invoice) guardMutable() error {
	if i.Status == InvoiceStatusPaid {
		return shared.NewBusinessRuleViolation("invoice_paid",
			"Paid invoices are immutable",
			map[string]interface{}{"paid_at": i.PaidAt})
	}
	return nil
}

// LinkOrder links the source order
func (i *Invoice) LinkOrder(orderID uuid.UUID) {
	i.OrderID = &orderID
	i.Touch()
}

// LinkProject links the source project
func (i *Invoice) LinkProject(projectID uuid.UUID) {
	i.ProjectID = &projectID
	i.Touch()
}

// UpdateAmount changes the net total. DRAFT only.
func (i *Invoice) UpdateAmount(totalNet decimal.Decimal) error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewBusinessRuleViolation("invoice_immutable",
			"Amounts can only be changed on draft invoices",
			map[string]interface{}{"status": i.Status.String()})
	}
	if totalNet.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Invoice amount cannot be negative")
	}
	i.TotalNet = totalNet
	i.recalculateGross()
	i.Touch()
	return nil
}

// Send transitions the invoice from DRAFT to SENT and sets the due date
func (i *Invoice) Send(dueDate time.Time) error {
	if !i.Status.CanTransitionTo(InvoiceStatusSent) {
		return invoiceTransitionError(i.Status, InvoiceStatusSent)
	}
	if dueDate.Before(time.Now()) {
		return shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be in the past")
	}

	now := time.Now()
	i.Status = InvoiceStatusSent
	i.SentAt = &now
	i.DueDate = &dueDate
	i.Touch()

	i.AddDomainEvent(NewInvoiceSentEvent(i))

	return nil
}

// MarkPaid transitions the invoice to PAID (from SENT or OVERDUE)
func (i *Invoice) MarkPaid() error {
	if !i.Status.CanTransitionTo(InvoiceStatusPaid) {
		return invoiceTransitionError(i.Status, InvoiceStatusPaid)
	}

	now := time.Now()
	i.Status = InvoiceStatusPaid
	i.PaidAt = &now
	i.Touch()

	i.AddDomainEvent(NewInvoicePaidEvent(i))

	return nil
}

// MarkOverdue transitions the invoice from SENT to OVERDUE once the due
// date has passed. Driven by the daily overdue sweep.
func (i *Invoice) MarkOverdue() error {
	if !i.Status.CanTransitionTo(InvoiceStatusOverdue) {
		return invoiceTransitionError(i.Status, InvoiceStatusOverdue)
	}
	if i.DueDate == nil || i.DueDate.After(time.Now()) {
		return shared.NewBusinessRuleViolation("invoice_not_due",
			"Invoice due date has not passed yet",
			map[string]interface{}{"due_date": i.DueDate})
	}

	now := time.Now()
	i.Status = InvoiceStatusOverdue
	i.OverdueSince = &now
	i.Touch()

	i.AddDomainEvent(NewInvoiceOverdueEvent(i))

	return nil
}

func (i *Invoice) recalculateGross() {
	i.TotalGross = valueobject.NewMoneyEUR(i.TotalNet).WithTax(i.TaxRate).Amount()
}

// IsPaid returns true once the invoice is settled
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// IsOpen returns true while payment is outstanding
func (i *Invoice) IsOpen() bool {
	return i.Status == InvoiceStatusSent || i.Status == InvoiceStatusOverdue
}
