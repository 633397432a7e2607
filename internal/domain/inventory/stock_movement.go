package inventory

import (
	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MovementType classifies a stock movement
type MovementType string

const (
	// MovementTypePurchase is stock received from a supplier
	MovementTypePurchase MovementType = "PURCHASE"
	// MovementTypeConsumption is stock used on a project
	MovementTypeConsumption MovementType = "CONSUMPTION"
	// MovementTypeReturn is stock returned from a project
	MovementTypeReturn MovementType = "RETURN"
	// MovementTypeCorrection is a manual inventory correction
	MovementTypeCorrection MovementType = "CORRECTION"
)

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypePurchase, MovementTypeConsumption, MovementTypeReturn, MovementTypeCorrection:
		return true
	}
	return false
}

// StockMovement is one immutable entry in the append-only stock ledger.
// It records the quantity delta together with the stock level before and
// after, so the history is auditable without replaying it. Corrections are
// made with new movements, never by editing old ones.
type StockMovement struct {
	shared.BaseEntity
	CompanyID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	MaterialID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	MaterialName string          `gorm:"type:varchar(200);not null"`
	MovementType MovementType    `gorm:"type:varchar(20);not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"` // signed delta
	StockBefore  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	StockAfter   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reference    string          `gorm:"type:varchar(100)"` // source document, e.g. an order number
	ProjectID    *uuid.UUID      `gorm:"type:uuid;index"`
}

// NewStockMovement creates a ledger entry for one stock adjustment
func NewStockMovement(material *Material, movementType MovementType, delta, before, after decimal.Decimal, reference string, projectID *uuid.UUID) *StockMovement {
	return &StockMovement{
		BaseEntity:   shared.NewBaseEntity(),
		CompanyID:    material.CompanyID,
		MaterialID:   material.ID,
		MaterialName: material.Name,
		MovementType: movementType,
		Quantity:     delta,
		StockBefore:  before,
		StockAfter:   after,
		Reference:    reference,
		ProjectID:    projectID,
	}
}
