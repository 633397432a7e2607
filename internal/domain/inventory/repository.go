package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MaterialRepository defines persistence operations for materials
type MaterialRepository interface {
	shared.CompanyRepository[Material]
	FindBySKU(ctx context.Context, companyID uuid.UUID, sku string) (*Material, error)
	FindBelowMinimum(ctx context.Context, companyID uuid.UUID) ([]Material, error)
	SaveWithLock(ctx context.Context, material *Material) error
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error
}

// StockMovementRepository persists the append-only stock ledger.
// There is deliberately no update or delete: movements are immutable.
type StockMovementRepository interface {
	Append(ctx context.Context, movement *StockMovement) error
	FindByMaterial(ctx context.Context, companyID, materialID uuid.UUID, filter shared.Filter) ([]StockMovement, error)
	// SumConsumptionCostByProject returns the material cost booked on a
	// project; feeds the project cost summary.
	SumConsumptionCostByProject(ctx context.Context, companyID, projectID uuid.UUID) (decimal.Decimal, error)
}
