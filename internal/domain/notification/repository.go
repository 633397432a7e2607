package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
)

// NotificationRepository defines persistence operations for notifications
type NotificationRepository interface {
	shared.CompanyRepository[Notification]
	FindByRecipient(ctx context.Context, companyID, recipientID uuid.UUID, filter shared.Filter) (shared.Paginated[Notification], error)
	CountUnread(ctx context.Context, companyID, recipientID uuid.UUID) (int64, error)
	MarkAllRead(ctx context.Context, companyID, recipientID uuid.UUID) error
	// DeleteExpired removes notifications whose expiry passed before the
	// cutoff and returns how many were removed
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error
}
