package notification

import (
	"context"
	"fmt"

	"github.com/handwerkos/backend/internal/domain/notification"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/work"
	"go.uber.org/zap"
)

// BudgetExceededHandler handles ProjectBudgetExceededEvent, raised by the
// periodic budget check, and alerts the assigned team
type BudgetExceededHandler struct {
	service *NotificationService
	logger  *zap.Logger
}

// NewBudgetExceededHandler creates a new handler for budget exceeded events
func NewBudgetExceededHandler(service *NotificationService, logger *zap.Logger) *BudgetExceededHandler {
	return &BudgetExceededHandler{
		service: service,
		logger:  logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *BudgetExceededHandler) EventTypes() []string {
	return []string{work.EventTypeProjectBudgetExceeded}
}

// Handle processes a ProjectBudgetExceededEvent by alerting the team
func (h *BudgetExceededHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	exceeded, ok := event.(*work.ProjectBudgetExceededEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", work.EventTypeProjectBudgetExceeded),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			work.EventTypeProjectBudgetExceeded, event.EventType())
	}

	if len(exceeded.Team) == 0 {
		return nil
	}

	projectID := exceeded.ProjectID
	title := fmt.Sprintf("Budget exceeded on %s", exceeded.Name)
	message := fmt.Sprintf("Project %s has booked %s EUR against a budget of %s EUR.",
		exceeded.Name, exceeded.Cost.StringFixed(2), exceeded.Budget.StringFixed(2))

	for _, member := range exceeded.Team {
		if _, err := h.service.Push(ctx, exceeded.CompanyID(), PushNotificationRequest{
			RecipientID: member,
			Type:        string(notification.TypeBudgetAlert),
			Priority:    string(notification.PriorityUrgent),
			Title:       title,
			Message:     message,
			EntityType:  work.AggregateTypeProject,
			EntityID:    &projectID,
		}); err != nil {
			return fmt.Errorf("failed to push notification to %s: %w", member, err)
		}
	}

	h.logger.Info("budget exceeded notifications pushed",
		zap.String("project", exceeded.Name),
		zap.Int("recipients", len(exceeded.Team)),
	)

	return nil
}
