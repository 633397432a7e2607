package finance

import (
	"context"
	"fmt"

	"github.com/handwerkos/backend/internal/domain/finance"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/work"
	"go.uber.org/zap"
)

// OrderCompletedHandler handles OrderCompletedEvent and creates a draft
// invoice from the completed order's totals
type OrderCompletedHandler struct {
	invoiceService *InvoiceService
	invoices       finance.InvoiceRepository
	logger         *zap.Logger
}

// NewOrderCompletedHandler creates a new handler for order completed events
func NewOrderCompletedHandler(
	invoiceService *InvoiceService,
	invoices finance.InvoiceRepository,
	logger *zap.Logger,
) *OrderCompletedHandler {
	return &OrderCompletedHandler{
		invoiceService: invoiceService,
		invoices:       invoices,
		logger:         logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderCompletedHandler) EventTypes() []string {
	return []string{work.EventTypeOrderCompleted}
}

// Handle processes an OrderCompletedEvent by creating a draft invoice
func (h *OrderCompletedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	completed, ok := event.(*work.OrderCompletedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", work.EventTypeOrderCompleted),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			work.EventTypeOrderCompleted, event.EventType())
	}

	h.logger.Info("processing order completed event for invoice creation",
		zap.String("order_id", completed.OrderID.String()),
		zap.String("order_number", completed.OrderNumber),
		zap.String("total_net", completed.TotalNet.String()),
	)

	if completed.TotalNet.IsZero() {
		h.logger.Info("skipping invoice creation - order total is zero",
			zap.String("order_id", completed.OrderID.String()),
			zap.String("order_number", completed.OrderNumber),
		)
		return nil
	}

	existing, err := h.invoices.FindByOrder(ctx, completed.CompanyID(), completed.OrderID)
	if err != nil {
		return fmt.Errorf("failed to check existing invoices: %w", err)
	}
	if len(existing) > 0 {
		h.logger.Info("skipping invoice creation - order already invoiced",
			zap.String("order_id", completed.OrderID.String()),
			zap.String("invoice_number", existing[0].InvoiceNumber),
		)
		return nil
	}

	orderID := completed.OrderID
	invoice, err := h.invoiceService.CreateDraft(ctx, completed.CompanyID(), CreateInvoiceRequest{
		CustomerID:   completed.CustomerID,
		CustomerName: completed.CustomerName,
		TotalNet:     completed.TotalNet,
		OrderID:      &orderID,
		ProjectID:    completed.ProjectID,
	})
	if err != nil {
		return fmt.Errorf("failed to create invoice for order %s: %w", completed.OrderNumber, err)
	}

	h.logger.Info("draft invoice created from completed order",
		zap.String("order_number", completed.OrderNumber),
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
	)

	return nil
}
