package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/notification"
	"github.com/handwerkos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormNotificationRepository implements notification.NotificationRepository
type GormNotificationRepository struct {
	gormCompanyRepository[notification.Notification]
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{gormCompanyRepository[notification.Notification]{gormRepository[notification.Notification]{db: db}}}
}

// FindByRecipient returns a page of a user's non-archived notifications
func (r *GormNotificationRepository) FindByRecipient(ctx context.Context, companyID, recipientID uuid.UUID, filter shared.Filter) (shared.Paginated[notification.Notification], error) {
	filter.Normalize()

	var total int64
	if err := r.db.WithContext(ctx).Model(&notification.Notification{}).
		Where("company_id = ? AND recipient_id = ? AND archived = ?", companyID, recipientID, false).
		Count(&total).Error; err != nil {
		return shared.Paginated[notification.Notification]{}, err
	}

	var notifications []notification.Notification
	query := applyFilter(
		r.db.WithContext(ctx).Model(&notification.Notification{}).
			Where("company_id = ? AND recipient_id = ? AND archived = ?", companyID, recipientID, false),
		filter,
	)
	if err := query.Find(&notifications).Error; err != nil {
		return shared.Paginated[notification.Notification]{}, err
	}

	return shared.NewPaginated(notifications, total, filter.Page, filter.PageSize), nil
}

// CountUnread counts a user's unread notifications
func (r *GormNotificationRepository) CountUnread(ctx context.Context, companyID, recipientID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("company_id = ? AND recipient_id = ? AND read = ? AND archived = ?",
			companyID, recipientID, false, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MarkAllRead marks every unread notification of a user as read
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, companyID, recipientID uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("company_id = ? AND recipient_id = ? AND read = ?", companyID, recipientID, false).
		Updates(map[string]interface{}{
			"read":       true,
			"read_at":    now,
			"updated_at": now,
		}).Error
}

// DeleteExpired removes notifications whose expiry passed before the cutoff
func (r *GormNotificationRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at < ?", cutoff).
		Delete(&notification.Notification{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteForCompany removes a notification within the company scope
func (r *GormNotificationRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	return r.deleteForCompany(ctx, companyID, id)
}

var _ notification.NotificationRepository = (*GormNotificationRepository)(nil)
