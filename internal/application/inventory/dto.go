package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CreateMaterialRequest registers a new material
type CreateMaterialRequest struct {
	Name         string           `json:"name" validate:"required,min=1,max=200"`
	SKU          string           `json:"sku" validate:"required,min=1,max=100"`
	Unit         string           `json:"unit" validate:"required,min=1,max=20"`
	UnitCost     decimal.Decimal  `json:"unit_cost" validate:"required"`
	MinimumStock *decimal.Decimal `json:"minimum_stock"`
}

// AdjustStockRequest books one stock movement
type AdjustStockRequest struct {
	Quantity     decimal.Decimal `json:"quantity" validate:"required"`
	MovementType string          `json:"movement_type" validate:"required,oneof=PURCHASE CONSUMPTION RETURN CORRECTION"`
	Reference    string          `json:"reference" validate:"max=100"`
	ProjectID    *uuid.UUID      `json:"project_id"`
}

// MaterialResponse is the API shape of a material
type MaterialResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Unit         string          `json:"unit"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Stock        decimal.Decimal `json:"stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	StockValue   decimal.Decimal `json:"stock_value"`
	BelowMinimum bool            `json:"below_minimum"`
	Version      int             `json:"version"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToMaterialResponse maps a material aggregate to its API shape
func ToMaterialResponse(material *inventory.Material) MaterialResponse {
	return MaterialResponse{
		ID:           material.ID,
		Name:         material.Name,
		SKU:          material.SKU,
		Unit:         material.Unit,
		UnitCost:     material.UnitCost,
		Stock:        material.Stock,
		MinimumStock: material.MinimumStock,
		StockValue:   material.StockValue(),
		BelowMinimum: material.IsBelowMinimum(),
		Version:      material.Version,
		CreatedAt:    material.CreatedAt,
		UpdatedAt:    material.UpdatedAt,
	}
}

// StockMovementResponse is one ledger entry in the movement history
type StockMovementResponse struct {
	ID           uuid.UUID       `json:"id"`
	MaterialID   uuid.UUID       `json:"material_id"`
	MaterialName string          `json:"material_name"`
	MovementType string          `json:"movement_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	StockBefore  decimal.Decimal `json:"stock_before"`
	StockAfter   decimal.Decimal `json:"stock_after"`
	Reference    string          `json:"reference,omitempty"`
	ProjectID    *uuid.UUID      `json:"project_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToStockMovementResponse maps a ledger entry to its API shape
func ToStockMovementResponse(movement *inventory.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:           movement.ID,
		MaterialID:   movement.MaterialID,
		MaterialName: movement.MaterialName,
		MovementType: movement.MovementType.String(),
		Quantity:     movement.Quantity,
		StockBefore:  movement.StockBefore,
		StockAfter:   movement.StockAfter,
		Reference:    movement.Reference,
		ProjectID:    movement.ProjectID,
		CreatedAt:    movement.CreatedAt,
	}
}
