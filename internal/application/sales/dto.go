package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// ==================== Quote DTOs ====================

// QuoteItemInput is one line item in a create or update request
type QuoteItemInput struct {
	Description string          `json:"description" validate:"required,min=1,max=500"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
}

// CreateQuoteRequest creates a new draft quote
type CreateQuoteRequest struct {
	CustomerID   uuid.UUID        `json:"customer_id" validate:"required"`
	CustomerName string           `json:"customer_name" validate:"required,min=1,max=200"`
	Title        string           `json:"title" validate:"max=200"`
	Items        []QuoteItemInput `json:"items" validate:"dive"`
	TaxRate      *decimal.Decimal `json:"tax_rate"`
	ValidUntil   *time.Time       `json:"valid_until"`
}

// UpdateQuoteRequest updates a draft quote
type UpdateQuoteRequest struct {
	Title      *string          `json:"title" validate:"omitempty,max=200"`
	TaxRate    *decimal.Decimal `json:"tax_rate"`
	ValidUntil *time.Time       `json:"valid_until"`
}

// AddQuoteItemRequest adds one line item to a draft quote
type AddQuoteItemRequest struct {
	Description string          `json:"description" validate:"required,min=1,max=500"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
}

// RejectQuoteRequest carries the customer's rejection reason
type RejectQuoteRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// QuoteItemResponse is one line item in a quote response
type QuoteItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Position    int             `json:"position"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// QuoteResponse is the API shape of a quote
type QuoteResponse struct {
	ID           uuid.UUID           `json:"id"`
	QuoteNumber  string              `json:"quote_number"`
	CustomerID   uuid.UUID           `json:"customer_id"`
	CustomerName string              `json:"customer_name"`
	Title        string              `json:"title"`
	Items        []QuoteItemResponse `json:"items"`
	TaxRate      decimal.Decimal     `json:"tax_rate"`
	TotalNet     decimal.Decimal     `json:"total_net"`
	TotalGross   decimal.Decimal     `json:"total_gross"`
	Status       string              `json:"status"`
	ValidUntil   *time.Time          `json:"valid_until,omitempty"`
	SentAt       *time.Time          `json:"sent_at,omitempty"`
	AcceptedAt   *time.Time          `json:"accepted_at,omitempty"`
	RejectedAt   *time.Time          `json:"rejected_at,omitempty"`
	RejectReason string              `json:"reject_reason,omitempty"`
	Version      int                 `json:"version"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// AcceptQuoteResponse carries both sides of the acceptance workflow
type AcceptQuoteResponse struct {
	Quote       QuoteResponse `json:"quote"`
	OrderID     uuid.UUID     `json:"order_id"`
	OrderNumber string        `json:"order_number"`
}

// ToQuoteResponse maps a quote aggregate to its API shape
func ToQuoteResponse(quote *sales.Quote) QuoteResponse {
	items := make([]QuoteItemResponse, len(quote.Items))
	for i, item := range quote.Items {
		items[i] = QuoteItemResponse{
			ID:          item.ID,
			Position:    item.Position,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}
	return QuoteResponse{
		ID:           quote.ID,
		QuoteNumber:  quote.QuoteNumber,
		CustomerID:   quote.CustomerID,
		CustomerName: quote.CustomerName,
		Title:        quote.Title,
		Items:        items,
		TaxRate:      quote.TaxRate,
		TotalNet:     quote.TotalNet,
		TotalGross:   quote.TotalGross,
		Status:       quote.Status.String(),
		ValidUntil:   quote.ValidUntil,
		SentAt:       quote.SentAt,
		AcceptedAt:   quote.AcceptedAt,
		RejectedAt:   quote.RejectedAt,
		RejectReason: quote.RejectReason,
		Version:      quote.Version,
		CreatedAt:    quote.CreatedAt,
		UpdatedAt:    quote.UpdatedAt,
	}
}

// ==================== Offer DTOs ====================

// OfferTargetsInput is the calculation behind an offer
type OfferTargetsInput struct {
	PlannedHours        decimal.Decimal `json:"planned_hours"`
	HourlyRate          decimal.Decimal `json:"hourly_rate"`
	PlannedMaterialCost decimal.Decimal `json:"planned_material_cost"`
	MarginPercent       decimal.Decimal `json:"margin_percent"`
}

// CreateOfferRequest creates a new draft offer
type CreateOfferRequest struct {
	CustomerID   uuid.UUID          `json:"customer_id" validate:"required"`
	CustomerName string             `json:"customer_name" validate:"required,min=1,max=200"`
	Title        string             `json:"title" validate:"max=200"`
	Items        []QuoteItemInput   `json:"items" validate:"dive"`
	Targets      *OfferTargetsInput `json:"targets"`
}

// AddOfferItemRequest adds one line item to a draft offer
type AddOfferItemRequest struct {
	Description string          `json:"description" validate:"required,min=1,max=500"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
}

// OfferItemResponse is one line item in an offer response
type OfferItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Position    int             `json:"position"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// OfferTargetsResponse exposes the calculation with its derived values
type OfferTargetsResponse struct {
	PlannedHours        decimal.Decimal `json:"planned_hours"`
	HourlyRate          decimal.Decimal `json:"hourly_rate"`
	PlannedMaterialCost decimal.Decimal `json:"planned_material_cost"`
	MarginPercent       decimal.Decimal `json:"margin_percent"`
	PlannedCost         decimal.Decimal `json:"planned_cost"`
	TargetPrice         decimal.Decimal `json:"target_price"`
}

// OfferResponse is the API shape of an offer
type OfferResponse struct {
	ID            uuid.UUID            `json:"id"`
	OfferNumber   string               `json:"offer_number"`
	CustomerID    uuid.UUID            `json:"customer_id"`
	CustomerName  string               `json:"customer_name"`
	Title         string               `json:"title"`
	Items         []OfferItemResponse  `json:"items"`
	Targets       OfferTargetsResponse `json:"targets"`
	TaxRate       decimal.Decimal      `json:"tax_rate"`
	TotalNet      decimal.Decimal      `json:"total_net"`
	TotalGross    decimal.Decimal      `json:"total_gross"`
	SnapshotNet   decimal.Decimal      `json:"snapshot_net"`
	SnapshotGross decimal.Decimal      `json:"snapshot_gross"`
	Locked        bool                 `json:"locked"`
	Status        string               `json:"status"`
	SentAt        *time.Time           `json:"sent_at,omitempty"`
	AcceptedAt    *time.Time           `json:"accepted_at,omitempty"`
	RejectedAt    *time.Time           `json:"rejected_at,omitempty"`
	Version       int                  `json:"version"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// ToOfferResponse maps an offer aggregate to its API shape
func ToOfferResponse(offer *sales.Offer) OfferResponse {
	items := make([]OfferItemResponse, len(offer.Items))
	for i, item := range offer.Items {
		items[i] = OfferItemResponse{
			ID:          item.ID,
			Position:    item.Position,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}
	return OfferResponse{
		ID:           offer.ID,
		OfferNumber:  offer.OfferNumber,
		CustomerID:   offer.CustomerID,
		CustomerName: offer.CustomerName,
		Title:        offer.Title,
		Items:        items,
		Targets: OfferTargetsResponse{
			PlannedHours:        offer.Targets.PlannedHours,
			HourlyRate:          offer.Targets.HourlyRate,
			PlannedMaterialCost: offer.Targets.PlannedMaterialCost,
			MarginPercent:       offer.Targets.MarginPercent,
			PlannedCost:         offer.Targets.PlannedCost(),
			TargetPrice:         offer.Targets.TargetPrice(),
		},
		TaxRate:       offer.TaxRate,
		TotalNet:      offer.TotalNet,
		TotalGross:    offer.TotalGross,
		SnapshotNet:   offer.SnapshotNet,
		SnapshotGross: offer.SnapshotGross,
		Locked:        offer.Locked,
		Status:        offer.Status.String(),
		SentAt:        offer.SentAt,
		AcceptedAt:    offer.AcceptedAt,
		RejectedAt:    offer.RejectedAt,
		Version:       offer.Version,
		CreatedAt:     offer.CreatedAt,
		UpdatedAt:     offer.UpdatedAt,
	}
}
