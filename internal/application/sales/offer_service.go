package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/application/validation"
	"github.com/handwerkos/backend/internal/domain/sales"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/shared/valueobject"
)

// OfferService handles offer business operations
type OfferService struct {
	offers         sales.OfferRepository
	eventPublisher shared.EventPublisher
}

// NewOfferService creates a new OfferService
func NewOfferService(offers sales.OfferRepository) *OfferService {
	return &OfferService{offers: offers}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OfferService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new draft offer
func (s *OfferService) Create(ctx context.Context, companyID uuid.UUID, req CreateOfferRequest) (*OfferResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	offerNumber, err := s.offers.GenerateOfferNumber(ctx, companyID)
	if err != nil {
		return nil, err
	}

	offer, err := sales.NewOffer(companyID, offerNumber, req.CustomerID, req.CustomerName, req.Title)
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		if _, err := offer.AddItem(item.Description, item.Quantity, valueobject.NewMoneyEUR(item.UnitPrice)); err != nil {
			return nil, err
		}
	}
	if req.Targets != nil {
		targets := sales.OfferTargets{
			PlannedHours:        req.Targets.PlannedHours,
			HourlyRate:          req.Targets.HourlyRate,
			PlannedMaterialCost: req.Targets.PlannedMaterialCost,
			MarginPercent:       req.Targets.MarginPercent,
		}
		if err := offer.SetTargets(targets); err != nil {
			return nil, err
		}
	}

	if err := s.offers.Save(ctx, offer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, offer)

	response := ToOfferResponse(offer)
	return &response, nil
}

// Get retrieves an offer by ID
func (s *OfferService) Get(ctx context.Context, companyID, offerID uuid.UUID) (*OfferResponse, error) {
	offer, err := s.offers.FindByIDForCompany(ctx, companyID, offerID)
	if err != nil {
		return nil, err
	}
	response := ToOfferResponse(offer)
	return &response, nil
}

// List retrieves a page of the company's offers
func (s *OfferService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]OfferResponse, int64, error) {
	filter.Normalize()

	offers, err := s.offers.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.offers.CountForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OfferResponse, len(offers))
	for i := range offers {
		responses[i] = ToOfferResponse(&offers[i])
	}
	return responses, total, nil
}

// AddItem adds a line item to an unlocked offer
func (s *OfferService) AddItem(ctx context.Context, companyID, offerID uuid.UUID, req AddOfferItemRequest) (*OfferResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	offer, err := s.offers.FindByIDForCompany(ctx, companyID, offerID)
	if err != nil {
		return nil, err
	}

	if _, err := offer.AddItem(req.Description, req.Quantity, valueobject.NewMoneyEUR(req.UnitPrice)); err != nil {
		return nil, err
	}

	if err := s.offers.SaveWithLock(ctx, offer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, offer)

	response := ToOfferResponse(offer)
	return &response, nil
}

// RemoveItem removes a line item from an unlocked offer
func (s *OfferService) RemoveItem(ctx context.Context, companyID, offerID, itemID uuid.UUID) (*OfferResponse, error) {
	offer, err := s.offers.FindByIDForCompany(ctx, companyID, offerID)
	if err != nil {
		return nil, err
	}

	if err := offer.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := s.offers.SaveWithLock(ctx, offer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, offer)

	response := ToOfferResponse(offer)
	return &response, nil
}

// SetTargets replaces the offer's calculation targets
func (s *OfferService) SetTargets(ctx context.Context, companyID, offerID uuid.UUID, req OfferTargetsInput) (*OfferResponse, error) {
	offer, err := s.offers.FindByIDForCompany(ctx, companyID, offerID)
	if err != nil {
		return nil, err
	}

	targets := sales.OfferTargets{
		PlannedHours:        req.PlannedHours,
		HourlyRate:          req.HourlyRate,
		PlannedMaterialCost: req.PlannedMaterialCost,
		MarginPercent:       req.MarginPercent,
	}
	if err := offer.SetTargets(targets); err != nil {
		return nil, err
	}

	if err := s.offers.SaveWithLock(ctx, offer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, offer)

	response := ToOfferResponse(offer)
	return &response, nil
}

// Send locks the offer and freezes the totals snapshot
func (s *OfferService) Send(ctx context.Context, companyID, offerID uuid.UUID) (*OfferResponse, error) {
	offer, err := s.offers.FindByIDForCompany(ctx, companyID, offerID)
	if err != nil {
		return nil, err
	}

	if err := offer.Send(); err != nil {
		return nil, err
	}

	if err := s.offers.SaveWithLock(ctx, offer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, offer)

	response := ToOfferResponse(offer)
	return &response, nil
}

// Accept transitions a sent offer to accepted
func (s *OfferService) Accept(ctx context.Context, companyID, offerID uuid.UUID) (*OfferResponse, error) {
	offer, err := s.offers.FindByIDForCompany(ctx, companyID, offerID)
	if err != nil {
		return nil, err
	}

	if err := offer.Accept(); err != nil {
		return nil, err
	}

	if err := s.offers.SaveWithLock(ctx, offer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, offer)

	response := ToOfferResponse(offer)
	return &response, nil
}

// Reject transitions a sent offer to rejected
func (s *OfferService) Reject(ctx context.Context, companyID, offerID uuid.UUID) (*OfferResponse, error) {
	offer, err := s.offers.FindByIDForCompany(ctx, companyID, offerID)
	if err != nil {
		return nil, err
	}

	if err := offer.Reject(); err != nil {
		return nil, err
	}

	if err := s.offers.SaveWithLock(ctx, offer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, offer)

	response := ToOfferResponse(offer)
	return &response, nil
}

func (s *OfferService) publishEvents(ctx context.Context, offer *sales.Offer) {
	if s.eventPublisher == nil {
		return
	}
	events := offer.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	offer.ClearDomainEvents()
}
