package notification

import (
	"context"
	"fmt"

	"github.com/handwerkos/backend/internal/domain/inventory"
	"github.com/handwerkos/backend/internal/domain/notification"
	"github.com/handwerkos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MaterialLowStockHandler handles MaterialLowStockEvent and fans a stock
// alert out to the company's active staff
type MaterialLowStockHandler struct {
	service   *NotificationService
	directory RecipientDirectory
	logger    *zap.Logger
}

// NewMaterialLowStockHandler creates a new handler for low stock events
func NewMaterialLowStockHandler(service *NotificationService, directory RecipientDirectory, logger *zap.Logger) *MaterialLowStockHandler {
	return &MaterialLowStockHandler{
		service:   service,
		directory: directory,
		logger:    logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *MaterialLowStockHandler) EventTypes() []string {
	return []string{inventory.EventTypeMaterialLowStock}
}

// Handle processes a MaterialLowStockEvent by pushing stock alerts
func (h *MaterialLowStockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	lowStock, ok := event.(*inventory.MaterialLowStockEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", inventory.EventTypeMaterialLowStock),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.EventTypeMaterialLowStock, event.EventType())
	}

	recipients, err := h.directory.CompanyRecipients(ctx, lowStock.CompanyID())
	if err != nil {
		return fmt.Errorf("failed to resolve recipients: %w", err)
	}
	if len(recipients) == 0 {
		h.logger.Info("no recipients for low stock notification",
			zap.String("sku", lowStock.SKU))
		return nil
	}

	materialID := lowStock.MaterialID
	title := fmt.Sprintf("Low stock: %s", lowStock.MaterialName)
	message := fmt.Sprintf("%s (%s) is down to %s, minimum is %s. Reorder soon.",
		lowStock.MaterialName, lowStock.SKU, lowStock.Stock.String(), lowStock.MinimumStock.String())

	for _, recipient := range recipients {
		if _, err := h.service.Push(ctx, lowStock.CompanyID(), PushNotificationRequest{
			RecipientID: recipient,
			Type:        string(notification.TypeStockAlert),
			Priority:    string(notification.PriorityHigh),
			Title:       title,
			Message:     message,
			EntityType:  inventory.AggregateTypeMaterial,
			EntityID:    &materialID,
		}); err != nil {
			return fmt.Errorf("failed to push notification to %s: %w", recipient, err)
		}
	}

	h.logger.Info("low stock notifications pushed",
		zap.String("sku", lowStock.SKU),
		zap.Int("recipients", len(recipients)),
	)

	return nil
}
