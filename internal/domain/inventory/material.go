package inventory

import (
	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Material represents a stocked material. The stock quantity is mutable;
// every change goes through AdjustStock which returns the immutable ledger
// entry recording it.
type Material struct {
	shared.CompanyAggregateRoot
	Name         string
	SKU          string
	Unit         string // e.g. "pcs", "m", "kg"
	UnitCost     decimal.Decimal
	Stock        decimal.Decimal
	MinimumStock decimal.Decimal
}

// NewMaterial creates a new material with zero stock
func NewMaterial(companyID uuid.UUID, name, sku, unit string, unitCost decimal.Decimal) (*Material, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Material name cannot be empty")
	}
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	return &Material{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		SKU:                  sku,
		Unit:                 unit,
		UnitCost:             unitCost,
		Stock:                decimal.Zero,
		MinimumStock:         decimal.Zero,
	}, nil
}

// SetMinimumStock sets the low-stock alert threshold
func (m *Material) SetMinimumStock(minimum decimal.Decimal) error {
	if minimum.IsNegative() {
		return shared.NewDomainError("INVALID_MINIMUM", "Minimum stock cannot be negative")
	}
	m.MinimumStock = minimum
	m.Touch()
	return nil
}

// AdjustStock changes the stock quantity by delta (positive or negative)
// and returns the ledger entry recording the change. Stock can never go
// negative: a larger deduction than available fails citing the available
// and requested quantities, and no movement is written.
func (m *Material) AdjustStock(delta decimal.Decimal, movementType MovementType, reference string, projectID *uuid.UUID) (*StockMovement, error) {
	if delta.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Stock adjustment cannot be zero")
	}

	newStock := m.Stock.Add(delta)
	if newStock.IsNegative() {
		return nil, shared.NewBusinessRuleViolation("stock_insufficient",
			"Stock cannot go negative",
			map[string]interface{}{
				"available": m.Stock.String(),
				"requested": delta.Abs().String(),
				"material":  m.Name,
			})
	}

	previous := m.Stock
	m.Stock = newStock
	m.Touch()

	movement := NewStockMovement(m, movementType, delta, previous, newStock, reference, projectID)

	m.AddDomainEvent(NewStockAdjustedEvent(m, movement))
	if m.IsBelowMinimum() {
		m.AddDomainEvent(NewMaterialLowStockEvent(m))
	}

	return movement, nil
}

// IsBelowMinimum returns true if the stock is at or below the alert threshold
func (m *Material) IsBelowMinimum() bool {
	return m.MinimumStock.IsPositive() && m.Stock.LessThanOrEqual(m.MinimumStock)
}

// StockValue returns the value of the current stock at unit cost
func (m *Material) StockValue() decimal.Decimal {
	return m.Stock.Mul(m.UnitCost).RoundBank(2)
}
