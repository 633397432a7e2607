package notification

import (
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
)

// NotificationType classifies in-app notifications
type NotificationType string

const (
	TypeQuoteAccepted   NotificationType = "QUOTE_ACCEPTED"
	TypeOrderUpdate     NotificationType = "ORDER_UPDATE"
	TypeProjectUpdate   NotificationType = "PROJECT_UPDATE"
	TypePaymentReminder NotificationType = "PAYMENT_REMINDER"
	TypeStockAlert      NotificationType = "STOCK_ALERT"
	TypeBudgetAlert     NotificationType = "BUDGET_ALERT"
	TypeSystem          NotificationType = "SYSTEM"
)

// Priority controls ordering in the notification feed
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// IsValid returns true if the priority is known
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Notification is an in-app message addressed to a single user. Expired
// notifications are removed by the cleanup worker.
type Notification struct {
	shared.CompanyAggregateRoot
	RecipientID uuid.UUID
	Type        NotificationType
	Priority    Priority
	Title       string
	Message     string
	EntityType  string     // related aggregate type, e.g. "Quote"
	EntityID    *uuid.UUID // related aggregate ID
	Read        bool
	ReadAt      *time.Time
	Archived    bool
	ExpiresAt   *time.Time
}

// NewNotification creates an unread notification for a recipient
func NewNotification(companyID, recipientID uuid.UUID, notifType NotificationType, priority Priority, title, message string) (*Notification, error) {
	if recipientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Notification recipient cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot be empty")
	}
	if !priority.IsValid() {
		priority = PriorityNormal
	}

	return &Notification{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		RecipientID:          recipientID,
		Type:                 notifType,
		Priority:             priority,
		Title:                title,
		Message:              message,
	}, nil
}

// Relate links the notification to the aggregate it talks about
func (n *Notification) Relate(entityType string, entityID uuid.UUID) {
	n.EntityType = entityType
	n.EntityID = &entityID
}

// ExpireAfter sets the expiry used by the cleanup worker
func (n *Notification) ExpireAfter(d time.Duration) {
	at := time.Now().Add(d)
	n.ExpiresAt = &at
}

// MarkRead records the read timestamp, idempotently
func (n *Notification) MarkRead() {
	if n.Read {
		return
	}
	n.Read = true
	now := time.Now()
	n.ReadAt = &now
	n.Touch()
}

// Archive hides the notification from the active feed
func (n *Notification) Archive() {
	if n.Archived {
		return
	}
	n.Archived = true
	n.Touch()
}

// IsExpired reports whether the cleanup worker may remove the notification
func (n *Notification) IsExpired(now time.Time) bool {
	return n.ExpiresAt != nil && now.After(*n.ExpiresAt)
}
