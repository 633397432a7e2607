package inventory

import (
	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeMaterial = "Material"

// Event type constants
const (
	EventTypeStockAdjusted    = "StockAdjusted"
	EventTypeMaterialLowStock = "MaterialLowStock"
)

// StockAdjustedEvent is raised for every stock change, mirroring the
// ledger entry that recorded it.
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	MaterialID   uuid.UUID       `json:"material_id"`
	MaterialName string          `json:"material_name"`
	MovementID   uuid.UUID       `json:"movement_id"`
	MovementType string          `json:"movement_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	StockBefore  decimal.Decimal `json:"stock_before"`
	StockAfter   decimal.Decimal `json:"stock_after"`
	Reference    string          `json:"reference,omitempty"`
}

// NewStockAdjustedEvent creates a new StockAdjustedEvent
func NewStockAdjustedEvent(material *Material, movement *StockMovement) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockAdjusted, AggregateTypeMaterial, material.ID, material.CompanyID),
		MaterialID:      material.ID,
		MaterialName:    material.Name,
		MovementID:      movement.ID,
		MovementType:    movement.MovementType.String(),
		Quantity:        movement.Quantity,
		StockBefore:     movement.StockBefore,
		StockAfter:      movement.StockAfter,
		Reference:       movement.Reference,
	}
}

// EventType returns the event type name
func (e *StockAdjustedEvent) EventType() string {
	return EventTypeStockAdjusted
}

// MaterialLowStockEvent is raised when an adjustment leaves the stock at or
// below the material's minimum.
type MaterialLowStockEvent struct {
	shared.BaseDomainEvent
	MaterialID   uuid.UUID       `json:"material_id"`
	MaterialName string          `json:"material_name"`
	SKU          string          `json:"sku"`
	Stock        decimal.Decimal `json:"stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
}

// NewMaterialLowStockEvent creates a new MaterialLowStockEvent
func NewMaterialLowStockEvent(material *Material) *MaterialLowStockEvent {
	return &MaterialLowStockEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMaterialLowStock, AggregateTypeMaterial, material.ID, material.CompanyID),
		MaterialID:      material.ID,
		MaterialName:    material.Name,
		SKU:             material.SKU,
		Stock:           material.Stock,
		MinimumStock:    material.MinimumStock,
	}
}

// EventType returns the event type name
func (e *MaterialLowStockEvent) EventType() string {
	return EventTypeMaterialLowStock
}
