package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/application/validation"
	"github.com/handwerkos/backend/internal/domain/finance"
	"github.com/handwerkos/backend/internal/domain/shared"
)

// InvoiceService handles invoice business operations
type InvoiceService struct {
	invoices       finance.InvoiceRepository
	eventPublisher shared.EventPublisher
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoices finance.InvoiceRepository) *InvoiceService {
	return &InvoiceService{invoices: invoices}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *InvoiceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateDraft creates a new draft invoice
func (s *InvoiceService) CreateDraft(ctx context.Context, companyID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	invoiceNumber, err := s.invoices.GenerateInvoiceNumber(ctx, companyID)
	if err != nil {
		return nil, err
	}

	invoice, err := finance.NewInvoice(companyID, invoiceNumber, req.CustomerID, req.CustomerName, req.TotalNet)
	if err != nil {
		return nil, err
	}
	if req.OrderID != nil {
		invoice.LinkOrder(*req.OrderID)
	}
	if req.ProjectID != nil {
		invoice.LinkProject(*req.ProjectID)
	}

	if err := s.invoices.Save(ctx, invoice); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, invoice)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Get retrieves an invoice by ID
func (s *InvoiceService) Get(ctx context.Context, companyID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByIDForCompany(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves a page of the company's invoices
func (s *InvoiceService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]InvoiceResponse, int64, error) {
	filter.Normalize()

	invoices, err := s.invoices.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.invoices.CountForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses, total, nil
}

// UpdateAmount changes the net total of a draft invoice
func (s *InvoiceService) UpdateAmount(ctx context.Context, companyID, invoiceID uuid.UUID, req UpdateInvoiceAmountRequest) (*InvoiceResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return s.transition(ctx, companyID, invoiceID, func(inv *finance.Invoice) error {
		return inv.UpdateAmount(req.TotalNet)
	})
}

// Send transitions a draft invoice to sent with a payment due date
func (s *InvoiceService) Send(ctx context.Context, companyID, invoiceID uuid.UUID, req SendInvoiceRequest) (*InvoiceResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return s.transition(ctx, companyID, invoiceID, func(inv *finance.Invoice) error {
		return inv.Send(req.DueDate)
	})
}

// MarkPaid settles a sent or overdue invoice
func (s *InvoiceService) MarkPaid(ctx context.Context, companyID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, companyID, invoiceID, func(inv *finance.Invoice) error {
		return inv.MarkPaid()
	})
}

// MarkOverdue flags a sent invoice whose due date has passed. Called by the
// daily overdue sweep.
func (s *InvoiceService) MarkOverdue(ctx context.Context, companyID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, companyID, invoiceID, func(inv *finance.Invoice) error {
		return inv.MarkOverdue()
	})
}

// Delete removes an invoice. Only draft invoices may be deleted.
func (s *InvoiceService) Delete(ctx context.Context, companyID, invoiceID uuid.UUID) error {
	invoice, err := s.invoices.FindByIDForCompany(ctx, companyID, invoiceID)
	if err != nil {
		return err
	}

	if invoice.Status != finance.InvoiceStatusDraft {
		return shared.NewBusinessRuleViolation("invoice_not_draft",
			"Only draft invoices can be deleted",
			map[string]interface{}{"status": invoice.Status.String()})
	}

	return s.invoices.DeleteForCompany(ctx, companyID, invoiceID)
}

func (s *InvoiceService) transition(ctx context.Context, companyID, invoiceID uuid.UUID, apply func(*finance.Invoice) error) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByIDForCompany(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := apply(invoice); err != nil {
		return nil, err
	}

	if err := s.invoices.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, invoice)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

func (s *InvoiceService) publishEvents(ctx context.Context, invoice *finance.Invoice) {
	if s.eventPublisher == nil {
		return
	}
	events := invoice.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	invoice.ClearDomainEvents()
}
