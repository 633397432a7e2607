package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest creates a draft invoice
type CreateInvoiceRequest struct {
	CustomerID   uuid.UUID       `json:"customer_id" validate:"required"`
	CustomerName string          `json:"customer_name" validate:"required,min=1,max=200"`
	TotalNet     decimal.Decimal `json:"total_net" validate:"required"`
	OrderID      *uuid.UUID      `json:"order_id"`
	ProjectID    *uuid.UUID      `json:"project_id"`
}

// SendInvoiceRequest sends a draft invoice with a payment due date
type SendInvoiceRequest struct {
	DueDate time.Time `json:"due_date" validate:"required"`
}

// UpdateInvoiceAmountRequest changes the net total of a draft invoice
type UpdateInvoiceAmountRequest struct {
	TotalNet decimal.Decimal `json:"total_net" validate:"required"`
}

// InvoiceResponse is the API shape of an invoice
type InvoiceResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	OrderID       *uuid.UUID      `json:"order_id,omitempty"`
	ProjectID     *uuid.UUID      `json:"project_id,omitempty"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	TotalNet      decimal.Decimal `json:"total_net"`
	TotalGross    decimal.Decimal `json:"total_gross"`
	Status        string          `json:"status"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	SentAt        *time.Time      `json:"sent_at,omitempty"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	OverdueSince  *time.Time      `json:"overdue_since,omitempty"`
	Version       int             `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToInvoiceResponse maps an invoice aggregate to its API shape
func ToInvoiceResponse(inv *finance.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		OrderID:       inv.OrderID,
		ProjectID:     inv.ProjectID,
		TaxRate:       inv.TaxRate,
		TotalNet:      inv.TotalNet,
		TotalGross:    inv.TotalGross,
		Status:        inv.Status.String(),
		DueDate:       inv.DueDate,
		SentAt:        inv.SentAt,
		PaidAt:        inv.PaidAt,
		OverdueSince:  inv.OverdueSince,
		Version:       inv.Version,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}
