package persistence

import (
	"context"

	"github.com/handwerkos/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormStockAdjustment writes a stock change and its ledger entry in one
// transaction. The material save carries the version check, so two
// concurrent deductions cannot both succeed on the same stock level and
// neither can leave a movement without the matching stock change.
type GormStockAdjustment struct {
	db *gorm.DB
}

// NewGormStockAdjustment creates a new GormStockAdjustment
func NewGormStockAdjustment(db *gorm.DB) *GormStockAdjustment {
	return &GormStockAdjustment{db: db}
}

// SaveAdjustment persists the material (with version check) and appends
// the movement atomically.
func (a *GormStockAdjustment) SaveAdjustment(ctx context.Context, material *inventory.Material, movement *inventory.StockMovement) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveWithLock(ctx, tx, material, material); err != nil {
			return err
		}
		return tx.Create(movement).Error
	})
}
