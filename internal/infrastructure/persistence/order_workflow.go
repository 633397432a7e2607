package persistence

import (
	"context"

	"github.com/handwerkos/backend/internal/domain/work"
	"gorm.io/gorm"
)

// GormOrderWorkflow writes the multi-aggregate steps of the order lifecycle
// in one transaction, so an order can never end up started without its
// project or completed while the project write failed.
type GormOrderWorkflow struct {
	db *gorm.DB
}

// NewGormOrderWorkflow creates a new GormOrderWorkflow
func NewGormOrderWorkflow(db *gorm.DB) *GormOrderWorkflow {
	return &GormOrderWorkflow{db: db}
}

// SaveStart persists the started order (with version check) and inserts the
// freshly created project atomically.
func (w *GormOrderWorkflow) SaveStart(ctx context.Context, order *work.Order, project *work.Project) error {
	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveWithLock(ctx, tx, order, order); err != nil {
			return err
		}
		return tx.Create(project).Error
	})
}

// SaveCascade persists an order status change together with the cascaded
// project status change, both under optimistic locking.
func (w *GormOrderWorkflow) SaveCascade(ctx context.Context, order *work.Order, project *work.Project) error {
	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveWithLock(ctx, tx, order, order); err != nil {
			return err
		}
		return saveWithLock(ctx, tx, project, project)
	})
}
