package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/audit"
	"github.com/handwerkos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAuditRepository persists the append-only audit trail
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Record inserts one audit entry. The bus calls this synchronously before
// dispatching an auditable event.
func (r *GormAuditRepository) Record(ctx context.Context, entry audit.Entry) error {
	return r.db.WithContext(ctx).Create(&entry).Error
}

// FindByAggregate returns the audit trail of one aggregate, oldest first
func (r *GormAuditRepository) FindByAggregate(ctx context.Context, companyID, aggregateID uuid.UUID) ([]audit.Entry, error) {
	var entries []audit.Entry
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND aggregate_id = ?", companyID, aggregateID).
		Order("recorded_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByEventType returns a page of audit entries of one event type
func (r *GormAuditRepository) FindByEventType(ctx context.Context, companyID uuid.UUID, eventType string, filter shared.Filter) (shared.Paginated[audit.Entry], error) {
	filter.Normalize()
	if filter.OrderBy == "created_at" {
		filter.OrderBy = "recorded_at"
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&audit.Entry{}).
		Where("company_id = ? AND event_type = ?", companyID, eventType).
		Count(&total).Error; err != nil {
		return shared.Paginated[audit.Entry]{}, err
	}

	var entries []audit.Entry
	query := applyFilter(
		r.db.WithContext(ctx).Model(&audit.Entry{}).
			Where("company_id = ? AND event_type = ?", companyID, eventType),
		filter,
	)
	if err := query.Find(&entries).Error; err != nil {
		return shared.Paginated[audit.Entry]{}, err
	}

	return shared.NewPaginated(entries, total, filter.Page, filter.PageSize), nil
}

var _ audit.Repository = (*GormAuditRepository)(nil)
