package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/work"
	"gorm.io/gorm"
)

// GormOrderRepository implements work.OrderRepository using GORM
type GormOrderRepository struct {
	gormCompanyRepository[work.Order]
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{gormCompanyRepository[work.Order]{gormRepository[work.Order]{db: db}}}
}

// FindByIDForCompany loads the order with its line items
func (r *GormOrderRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*work.Order, error) {
	var order work.Order
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber finds an order by its business number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, companyID uuid.UUID, orderNumber string) (*work.Order, error) {
	var order work.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("company_id = ? AND order_number = ?", companyID, orderNumber).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByQuote finds the order created from an accepted quote
func (r *GormOrderRepository) FindByQuote(ctx context.Context, companyID, quoteID uuid.UUID) (*work.Order, error) {
	var order work.Order
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND quote_id = ?", companyID, quoteID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// CountByStatus counts the company's orders in one status
func (r *GormOrderRepository) CountByStatus(ctx context.Context, companyID uuid.UUID, status work.OrderStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&work.Order{}).
		Where("company_id = ? AND status = ?", companyID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateOrderNumber produces the next sequential order number per year
func (r *GormOrderRepository) GenerateOrderNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	return nextNumber(ctx, r.db, &work.Order{}, companyID, "AU")
}

// Save persists the order together with its line items
func (r *GormOrderRepository) Save(ctx context.Context, order *work.Order) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
}

// SaveWithLock persists the order with an optimistic version check
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *work.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveWithLock(ctx, tx, order, order); err != nil {
			return err
		}
		if len(order.Items) > 0 {
			if err := tx.Save(&order.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteForCompany removes an order within the company scope
func (r *GormOrderRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	return r.deleteForCompany(ctx, companyID, id)
}

var _ work.OrderRepository = (*GormOrderRepository)(nil)
