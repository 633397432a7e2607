package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/application/validation"
	"github.com/handwerkos/backend/internal/domain/notification"
	"github.com/handwerkos/backend/internal/domain/shared"
)

// NotificationService handles the in-app notification feed
type NotificationService struct {
	notifications notification.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifications notification.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// Push stores a new notification for one recipient
func (s *NotificationService) Push(ctx context.Context, companyID uuid.UUID, req PushNotificationRequest) (*NotificationResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	n, err := notification.NewNotification(companyID, req.RecipientID,
		notification.NotificationType(req.Type), notification.Priority(req.Priority),
		req.Title, req.Message)
	if err != nil {
		return nil, err
	}
	if req.EntityType != "" && req.EntityID != nil {
		n.Relate(req.EntityType, *req.EntityID)
	}
	if req.TTL > 0 {
		n.ExpireAfter(req.TTL)
	}

	if err := s.notifications.Save(ctx, n); err != nil {
		return nil, err
	}

	response := ToNotificationResponse(n)
	return &response, nil
}

// ListForUser retrieves a page of a recipient's active notifications
func (s *NotificationService) ListForUser(ctx context.Context, companyID, recipientID uuid.UUID, filter shared.Filter) ([]NotificationResponse, int64, error) {
	filter.Normalize()

	page, err := s.notifications.FindByRecipient(ctx, companyID, recipientID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]NotificationResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = ToNotificationResponse(&page.Items[i])
	}
	return responses, page.Total, nil
}

// CountUnread returns the recipient's unread badge count
func (s *NotificationService) CountUnread(ctx context.Context, companyID, recipientID uuid.UUID) (int64, error) {
	return s.notifications.CountUnread(ctx, companyID, recipientID)
}

// MarkRead records the read timestamp on one notification
func (s *NotificationService) MarkRead(ctx context.Context, companyID, notificationID uuid.UUID) (*NotificationResponse, error) {
	n, err := s.notifications.FindByIDForCompany(ctx, companyID, notificationID)
	if err != nil {
		return nil, err
	}

	n.MarkRead()

	if err := s.notifications.Save(ctx, n); err != nil {
		return nil, err
	}

	response := ToNotificationResponse(n)
	return &response, nil
}

// MarkAllRead marks every unread notification of the recipient as read
func (s *NotificationService) MarkAllRead(ctx context.Context, companyID, recipientID uuid.UUID) error {
	return s.notifications.MarkAllRead(ctx, companyID, recipientID)
}

// Archive hides a notification from the active feed
func (s *NotificationService) Archive(ctx context.Context, companyID, notificationID uuid.UUID) (*NotificationResponse, error) {
	n, err := s.notifications.FindByIDForCompany(ctx, companyID, notificationID)
	if err != nil {
		return nil, err
	}

	n.Archive()

	if err := s.notifications.Save(ctx, n); err != nil {
		return nil, err
	}

	response := ToNotificationResponse(n)
	return &response, nil
}

// CleanupExpired removes notifications whose expiry has passed. Called by
// the daily cleanup worker; returns how many were removed.
func (s *NotificationService) CleanupExpired(ctx context.Context) (int64, error) {
	return s.notifications.DeleteExpired(ctx, time.Now())
}
