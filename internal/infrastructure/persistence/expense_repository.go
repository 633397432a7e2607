package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/work"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormExpenseRepository implements work.ExpenseRepository using GORM
type GormExpenseRepository struct {
	gormCompanyRepository[work.Expense]
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{gormCompanyRepository[work.Expense]{gormRepository[work.Expense]{db: db}}}
}

// FindByProject returns a project's expenses, newest first by default
func (r *GormExpenseRepository) FindByProject(ctx context.Context, companyID, projectID uuid.UUID, filter shared.Filter) ([]work.Expense, error) {
	var expenses []work.Expense
	query := applyFilter(
		r.db.WithContext(ctx).Model(&work.Expense{}).
			Where("company_id = ? AND project_id = ?", companyID, projectID),
		filter,
	)
	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// SumApprovedCostByProject totals the approved expense cost on a project
func (r *GormExpenseRepository) SumApprovedCostByProject(ctx context.Context, companyID, projectID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&work.Expense{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("company_id = ? AND project_id = ? AND status = ?",
			companyID, projectID, work.ExpenseStatusApproved).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// SaveWithLock persists the expense with an optimistic version check
func (r *GormExpenseRepository) SaveWithLock(ctx context.Context, expense *work.Expense) error {
	return saveWithLock(ctx, r.db, expense, expense)
}

var _ work.ExpenseRepository = (*GormExpenseRepository)(nil)
