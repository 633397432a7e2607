package notification

import (
	"context"
	"fmt"

	"github.com/handwerkos/backend/internal/domain/notification"
	"github.com/handwerkos/backend/internal/domain/sales"
	"github.com/handwerkos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// QuoteAcceptedHandler handles QuoteAcceptedEvent and fans a notification
// out to the company's active staff
type QuoteAcceptedHandler struct {
	service   *NotificationService
	directory RecipientDirectory
	logger    *zap.Logger
}

// NewQuoteAcceptedHandler creates a new handler for quote accepted events
func NewQuoteAcceptedHandler(service *NotificationService, directory RecipientDirectory, logger *zap.Logger) *QuoteAcceptedHandler {
	return &QuoteAcceptedHandler{
		service:   service,
		directory: directory,
		logger:    logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *QuoteAcceptedHandler) EventTypes() []string {
	return []string{sales.EventTypeQuoteAccepted}
}

// Handle processes a QuoteAcceptedEvent by notifying the active staff
func (h *QuoteAcceptedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	accepted, ok := event.(*sales.QuoteAcceptedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", sales.EventTypeQuoteAccepted),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			sales.EventTypeQuoteAccepted, event.EventType())
	}

	recipients, err := h.directory.CompanyRecipients(ctx, accepted.CompanyID())
	if err != nil {
		return fmt.Errorf("failed to resolve recipients: %w", err)
	}
	if len(recipients) == 0 {
		h.logger.Info("no recipients for quote accepted notification",
			zap.String("quote_number", accepted.QuoteNumber))
		return nil
	}

	quoteID := accepted.QuoteID
	title := fmt.Sprintf("Quote %s accepted", accepted.QuoteNumber)
	message := fmt.Sprintf("%s accepted quote %s (%s EUR net). Order %s was created.",
		accepted.CustomerName, accepted.QuoteNumber, accepted.TotalNet.StringFixed(2), accepted.OrderNumber)

	for _, recipient := range recipients {
		if _, err := h.service.Push(ctx, accepted.CompanyID(), PushNotificationRequest{
			RecipientID: recipient,
			Type:        string(notification.TypeQuoteAccepted),
			Priority:    string(notification.PriorityNormal),
			Title:       title,
			Message:     message,
			EntityType:  sales.AggregateTypeQuote,
			EntityID:    &quoteID,
		}); err != nil {
			return fmt.Errorf("failed to push notification to %s: %w", recipient, err)
		}
	}

	h.logger.Info("quote accepted notifications pushed",
		zap.String("quote_number", accepted.QuoteNumber),
		zap.Int("recipients", len(recipients)),
	)

	return nil
}
