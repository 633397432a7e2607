package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/application/validation"
	"github.com/handwerkos/backend/internal/domain/inventory"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockAdjustment persists a stock change and its ledger entry in one
// transaction. Implemented by the persistence layer.
type StockAdjustment interface {
	SaveAdjustment(ctx context.Context, material *inventory.Material, movement *inventory.StockMovement) error
}

// MaterialService handles material and stock business operations
type MaterialService struct {
	materials      inventory.MaterialRepository
	movements      inventory.StockMovementRepository
	adjustment     StockAdjustment
	eventPublisher shared.EventPublisher
}

// NewMaterialService creates a new MaterialService
func NewMaterialService(materials inventory.MaterialRepository, movements inventory.StockMovementRepository, adjustment StockAdjustment) *MaterialService {
	return &MaterialService{
		materials:  materials,
		movements:  movements,
		adjustment: adjustment,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *MaterialService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create registers a new material with zero stock. SKUs are unique per
// company.
func (s *MaterialService) Create(ctx context.Context, companyID uuid.UUID, req CreateMaterialRequest) (*MaterialResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	existing, err := s.materials.FindBySKU(ctx, companyID, req.SKU)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewBusinessRuleViolation("sku_taken",
			"A material with this SKU already exists",
			map[string]interface{}{"sku": req.SKU})
	}

	material, err := inventory.NewMaterial(companyID, req.Name, req.SKU, req.Unit, req.UnitCost)
	if err != nil {
		return nil, err
	}
	if req.MinimumStock != nil {
		if err := material.SetMinimumStock(*req.MinimumStock); err != nil {
			return nil, err
		}
	}

	if err := s.materials.Save(ctx, material); err != nil {
		return nil, err
	}

	response := ToMaterialResponse(material)
	return &response, nil
}

// Get retrieves a material by ID
func (s *MaterialService) Get(ctx context.Context, companyID, materialID uuid.UUID) (*MaterialResponse, error) {
	material, err := s.materials.FindByIDForCompany(ctx, companyID, materialID)
	if err != nil {
		return nil, err
	}
	response := ToMaterialResponse(material)
	return &response, nil
}

// List retrieves a page of the company's materials
func (s *MaterialService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]MaterialResponse, int64, error) {
	filter.Normalize()

	materials, err := s.materials.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.materials.CountForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]MaterialResponse, len(materials))
	for i := range materials {
		responses[i] = ToMaterialResponse(&materials[i])
	}
	return responses, total, nil
}

// AdjustStock books one stock movement. The stock change and the ledger
// entry are written in one transaction under optimistic locking; a larger
// deduction than available fails without writing anything.
func (s *MaterialService) AdjustStock(ctx context.Context, companyID, materialID uuid.UUID, req AdjustStockRequest) (*MaterialResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	material, err := s.materials.FindByIDForCompany(ctx, companyID, materialID)
	if err != nil {
		return nil, err
	}

	movement, err := material.AdjustStock(req.Quantity, inventory.MovementType(req.MovementType), req.Reference, req.ProjectID)
	if err != nil {
		return nil, err
	}

	if err := s.adjustment.SaveAdjustment(ctx, material, movement); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, material)

	response := ToMaterialResponse(material)
	return &response, nil
}

// MovementHistory returns a material's ledger entries
func (s *MaterialService) MovementHistory(ctx context.Context, companyID, materialID uuid.UUID, filter shared.Filter) ([]StockMovementResponse, error) {
	filter.Normalize()

	movements, err := s.movements.FindByMaterial(ctx, companyID, materialID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]StockMovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToStockMovementResponse(&movements[i])
	}
	return responses, nil
}

// SetMinimumStock updates the low-stock alert threshold
func (s *MaterialService) SetMinimumStock(ctx context.Context, companyID, materialID uuid.UUID, minimum decimal.Decimal) (*MaterialResponse, error) {
	material, err := s.materials.FindByIDForCompany(ctx, companyID, materialID)
	if err != nil {
		return nil, err
	}

	if err := material.SetMinimumStock(minimum); err != nil {
		return nil, err
	}

	if err := s.materials.SaveWithLock(ctx, material); err != nil {
		return nil, err
	}

	response := ToMaterialResponse(material)
	return &response, nil
}

// Delete removes a material. Materials with stock on hand cannot be deleted.
func (s *MaterialService) Delete(ctx context.Context, companyID, materialID uuid.UUID) error {
	material, err := s.materials.FindByIDForCompany(ctx, companyID, materialID)
	if err != nil {
		return err
	}

	if material.Stock.IsPositive() {
		return shared.NewBusinessRuleViolation("material_in_stock",
			"Materials with stock on hand cannot be deleted",
			map[string]interface{}{"stock": material.Stock.String()})
	}

	return s.materials.DeleteForCompany(ctx, companyID, materialID)
}

func (s *MaterialService) publishEvents(ctx context.Context, material *inventory.Material) {
	if s.eventPublisher == nil {
		return
	}
	events := material.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	material.ClearDomainEvents()
}
