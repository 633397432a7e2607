package notification

import (
	"context"
	"fmt"

	"github.com/handwerkos/backend/internal/domain/finance"
	"github.com/handwerkos/backend/internal/domain/notification"
	"github.com/handwerkos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InvoiceSentHandler handles InvoiceSentEvent and pushes a payment
// reminder into the feed
type InvoiceSentHandler struct {
	service   *NotificationService
	directory RecipientDirectory
	logger    *zap.Logger
}

// NewInvoiceSentHandler creates a new handler for invoice sent events
func NewInvoiceSentHandler(service *NotificationService, directory RecipientDirectory, logger *zap.Logger) *InvoiceSentHandler {
	return &InvoiceSentHandler{
		service:   service,
		directory: directory,
		logger:    logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *InvoiceSentHandler) EventTypes() []string {
	return []string{finance.EventTypeInvoiceSent}
}

// Handle processes an InvoiceSentEvent by pushing payment reminders
func (h *InvoiceSentHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	sent, ok := event.(*finance.InvoiceSentEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", finance.EventTypeInvoiceSent),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			finance.EventTypeInvoiceSent, event.EventType())
	}

	recipients, err := h.directory.CompanyRecipients(ctx, sent.CompanyID())
	if err != nil {
		return fmt.Errorf("failed to resolve recipients: %w", err)
	}
	if len(recipients) == 0 {
		h.logger.Info("no recipients for invoice sent notification",
			zap.String("invoice_number", sent.InvoiceNumber))
		return nil
	}

	invoiceID := sent.InvoiceID
	title := fmt.Sprintf("Invoice %s sent", sent.InvoiceNumber)
	message := fmt.Sprintf("Invoice %s over %s EUR went out to %s, due %s.",
		sent.InvoiceNumber, sent.TotalGross.StringFixed(2), sent.CustomerName,
		sent.DueDate.Format("2006-01-02"))

	for _, recipient := range recipients {
		if _, err := h.service.Push(ctx, sent.CompanyID(), PushNotificationRequest{
			RecipientID: recipient,
			Type:        string(notification.TypePaymentReminder),
			Priority:    string(notification.PriorityNormal),
			Title:       title,
			Message:     message,
			EntityType:  finance.AggregateTypeInvoice,
			EntityID:    &invoiceID,
		}); err != nil {
			return fmt.Errorf("failed to push notification to %s: %w", recipient, err)
		}
	}

	h.logger.Info("invoice sent notifications pushed",
		zap.String("invoice_number", sent.InvoiceNumber),
		zap.Int("recipients", len(recipients)),
	)

	return nil
}
