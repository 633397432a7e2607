package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/work"
	"gorm.io/gorm"
)

// GormProjectRepository implements work.ProjectRepository using GORM
type GormProjectRepository struct {
	gormCompanyRepository[work.Project]
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{gormCompanyRepository[work.Project]{gormRepository[work.Project]{db: db}}}
}

// FindByOrder finds the project linked to an order
func (r *GormProjectRepository) FindByOrder(ctx context.Context, companyID, orderID uuid.UUID) (*work.Project, error) {
	var project work.Project
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND order_id = ?", companyID, orderID).
		First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// FindActive returns the company's active projects
func (r *GormProjectRepository) FindActive(ctx context.Context, companyID uuid.UUID) ([]work.Project, error) {
	var projects []work.Project
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND status = ?", companyID, work.ProjectStatusActive).
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// CountActiveByCustomer counts non-terminal projects referencing a customer
func (r *GormProjectRepository) CountActiveByCustomer(ctx context.Context, companyID, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&work.Project{}).
		Where("company_id = ? AND customer_id = ? AND status IN ?",
			companyID, customerID,
			[]work.ProjectStatus{work.ProjectStatusPlanned, work.ProjectStatusActive, work.ProjectStatusBlocked}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SaveWithLock persists the project with an optimistic version check
func (r *GormProjectRepository) SaveWithLock(ctx context.Context, project *work.Project) error {
	return saveWithLock(ctx, r.db, project, project)
}

// DeleteForCompany removes a project within the company scope
func (r *GormProjectRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	return r.deleteForCompany(ctx, companyID, id)
}

var _ work.ProjectRepository = (*GormProjectRepository)(nil)
