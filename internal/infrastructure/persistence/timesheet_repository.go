package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/work"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormTimesheetRepository implements work.TimesheetRepository using GORM
type GormTimesheetRepository struct {
	gormCompanyRepository[work.Timesheet]
}

// NewGormTimesheetRepository creates a new GormTimesheetRepository
func NewGormTimesheetRepository(db *gorm.DB) *GormTimesheetRepository {
	return &GormTimesheetRepository{gormCompanyRepository[work.Timesheet]{gormRepository[work.Timesheet]{db: db}}}
}

// FindByProject returns a project's time entries, newest first by default
func (r *GormTimesheetRepository) FindByProject(ctx context.Context, companyID, projectID uuid.UUID, filter shared.Filter) ([]work.Timesheet, error) {
	var entries []work.Timesheet
	query := applyFilter(
		r.db.WithContext(ctx).Model(&work.Timesheet{}).
			Where("company_id = ? AND project_id = ?", companyID, projectID),
		filter,
	)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// SumApprovedCostByProject totals the approved labor cost on a project
func (r *GormTimesheetRepository) SumApprovedCostByProject(ctx context.Context, companyID, projectID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&work.Timesheet{}).
		Select("COALESCE(SUM(cost), 0) AS total").
		Where("company_id = ? AND project_id = ? AND status = ?",
			companyID, projectID, work.TimesheetStatusApproved).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// SaveWithLock persists the entry with an optimistic version check
func (r *GormTimesheetRepository) SaveWithLock(ctx context.Context, ts *work.Timesheet) error {
	return saveWithLock(ctx, r.db, ts, ts)
}

var _ work.TimesheetRepository = (*GormTimesheetRepository)(nil)
