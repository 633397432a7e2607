package notification

import (
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/notification"
)

// PushNotificationRequest addresses one in-app notification
type PushNotificationRequest struct {
	RecipientID uuid.UUID  `json:"recipient_id" validate:"required"`
	Type        string     `json:"type" validate:"required"`
	Priority    string     `json:"priority"`
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Message     string     `json:"message" validate:"max=1000"`
	EntityType  string     `json:"entity_type"`
	EntityID    *uuid.UUID `json:"entity_id"`
	// TTL controls when the cleanup worker may remove the notification;
	// zero means it never expires.
	TTL time.Duration `json:"-"`
}

// NotificationResponse is the API shape of a notification
type NotificationResponse struct {
	ID          uuid.UUID  `json:"id"`
	RecipientID uuid.UUID  `json:"recipient_id"`
	Type        string     `json:"type"`
	Priority    string     `json:"priority"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	EntityType  string     `json:"entity_type,omitempty"`
	EntityID    *uuid.UUID `json:"entity_id,omitempty"`
	Read        bool       `json:"read"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	Archived    bool       `json:"archived"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToNotificationResponse maps a notification to its API shape
func ToNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		Type:        string(n.Type),
		Priority:    string(n.Priority),
		Title:       n.Title,
		Message:     n.Message,
		EntityType:  n.EntityType,
		EntityID:    n.EntityID,
		Read:        n.Read,
		ReadAt:      n.ReadAt,
		Archived:    n.Archived,
		ExpiresAt:   n.ExpiresAt,
		CreatedAt:   n.CreatedAt,
	}
}
