package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/inventory"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormMaterialRepository implements inventory.MaterialRepository using GORM
type GormMaterialRepository struct {
	gormCompanyRepository[inventory.Material]
}

// NewGormMaterialRepository creates a new GormMaterialRepository
func NewGormMaterialRepository(db *gorm.DB) *GormMaterialRepository {
	return &GormMaterialRepository{gormCompanyRepository[inventory.Material]{gormRepository[inventory.Material]{db: db}}}
}

// FindBySKU finds a material by its SKU within the company
func (r *GormMaterialRepository) FindBySKU(ctx context.Context, companyID uuid.UUID, sku string) (*inventory.Material, error) {
	var material inventory.Material
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND sku = ?", companyID, sku).
		First(&material).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &material, nil
}

// FindBelowMinimum returns materials whose stock fell under the threshold
func (r *GormMaterialRepository) FindBelowMinimum(ctx context.Context, companyID uuid.UUID) ([]inventory.Material, error) {
	var materials []inventory.Material
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND minimum_stock > 0 AND stock <= minimum_stock", companyID).
		Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

// SaveWithLock persists the material with an optimistic version check.
// Stock adjustments go through this path so two concurrent deductions
// cannot both succeed on the same stock level.
func (r *GormMaterialRepository) SaveWithLock(ctx context.Context, material *inventory.Material) error {
	return saveWithLock(ctx, r.db, material, material)
}

// DeleteForCompany removes a material within the company scope
func (r *GormMaterialRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	return r.deleteForCompany(ctx, companyID, id)
}

var _ inventory.MaterialRepository = (*GormMaterialRepository)(nil)

// GormStockMovementRepository persists the append-only stock ledger
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Append inserts a ledger entry. Movements are never updated or deleted.
func (r *GormStockMovementRepository) Append(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByMaterial returns the movement history for one material
func (r *GormStockMovementRepository) FindByMaterial(ctx context.Context, companyID, materialID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockMovement{}).
			Where("company_id = ? AND material_id = ?", companyID, materialID),
		filter,
	)
	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// SumConsumptionCostByProject totals the material cost booked on a project.
// Consumption quantities are negative deltas, so the sum is negated.
func (r *GormStockMovementRepository) SumConsumptionCostByProject(ctx context.Context, companyID, projectID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Table("stock_movements AS sm").
		Select("COALESCE(SUM(sm.quantity * m.unit_cost), 0) AS total").
		Joins("JOIN materials m ON m.id = sm.material_id").
		Where("sm.company_id = ? AND sm.project_id = ? AND sm.movement_type = ?",
			companyID, projectID, inventory.MovementTypeConsumption).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total.Neg(), nil
}

var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
