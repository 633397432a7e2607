package notification

import (
	"context"
	"fmt"

	"github.com/handwerkos/backend/internal/domain/notification"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/work"
	"go.uber.org/zap"
)

// ProjectStatusChangedHandler handles ProjectStatusChangedEvent and
// notifies the assigned team. The event carries the team, so no project
// lookup is needed.
type ProjectStatusChangedHandler struct {
	service *NotificationService
	logger  *zap.Logger
}

// NewProjectStatusChangedHandler creates a new handler for project status
// changed events
func NewProjectStatusChangedHandler(service *NotificationService, logger *zap.Logger) *ProjectStatusChangedHandler {
	return &ProjectStatusChangedHandler{
		service: service,
		logger:  logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ProjectStatusChangedHandler) EventTypes() []string {
	return []string{work.EventTypeProjectStatusChanged}
}

// Handle processes a ProjectStatusChangedEvent by notifying the team
func (h *ProjectStatusChangedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*work.ProjectStatusChangedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", work.EventTypeProjectStatusChanged),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			work.EventTypeProjectStatusChanged, event.EventType())
	}

	if len(changed.Team) == 0 {
		return nil
	}

	projectID := changed.ProjectID
	title := fmt.Sprintf("Project %s is now %s", changed.Name, changed.NewStatus)
	message := fmt.Sprintf("Project %s moved from %s to %s.",
		changed.Name, changed.PreviousStatus, changed.NewStatus)

	for _, member := range changed.Team {
		if _, err := h.service.Push(ctx, changed.CompanyID(), PushNotificationRequest{
			RecipientID: member,
			Type:        string(notification.TypeProjectUpdate),
			Priority:    string(notification.PriorityNormal),
			Title:       title,
			Message:     message,
			EntityType:  work.AggregateTypeProject,
			EntityID:    &projectID,
		}); err != nil {
			return fmt.Errorf("failed to push notification to %s: %w", member, err)
		}
	}

	h.logger.Info("project status notifications pushed",
		zap.String("project", changed.Name),
		zap.String("status", changed.NewStatus),
		zap.Int("recipients", len(changed.Team)),
	)

	return nil
}
