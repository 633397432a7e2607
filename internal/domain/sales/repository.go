package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
)

// QuoteRepository defines persistence operations for quotes
type QuoteRepository interface {
	shared.CompanyRepository[Quote]
	FindByQuoteNumber(ctx context.Context, companyID uuid.UUID, quoteNumber string) (*Quote, error)
	FindExpirable(ctx context.Context, companyID uuid.UUID) ([]Quote, error)
	CountByStatus(ctx context.Context, companyID uuid.UUID, status QuoteStatus) (int64, error)
	GenerateQuoteNumber(ctx context.Context, companyID uuid.UUID) (string, error)
	// SaveWithLock persists the quote with an optimistic version check
	SaveWithLock(ctx context.Context, quote *Quote) error
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error
}

// OfferRepository defines persistence operations for offers
type OfferRepository interface {
	shared.CompanyRepository[Offer]
	FindByOfferNumber(ctx context.Context, companyID uuid.UUID, offerNumber string) (*Offer, error)
	GenerateOfferNumber(ctx context.Context, companyID uuid.UUID) (string, error)
	SaveWithLock(ctx context.Context, offer *Offer) error
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error
}
