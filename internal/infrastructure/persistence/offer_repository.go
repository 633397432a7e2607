package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/sales"
	"github.com/handwerkos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOfferRepository implements sales.OfferRepository using GORM
type GormOfferRepository struct {
	gormCompanyRepository[sales.Offer]
}

// NewGormOfferRepository creates a new GormOfferRepository
func NewGormOfferRepository(db *gorm.DB) *GormOfferRepository {
	return &GormOfferRepository{gormCompanyRepository[sales.Offer]{gormRepository[sales.Offer]{db: db}}}
}

// FindByIDForCompany loads the offer with its line items
func (r *GormOfferRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*sales.Offer, error) {
	var offer sales.Offer
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&offer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &offer, nil
}

// FindByOfferNumber finds an offer by its business number
func (r *GormOfferRepository) FindByOfferNumber(ctx context.Context, companyID uuid.UUID, offerNumber string) (*sales.Offer, error) {
	var offer sales.Offer
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("company_id = ? AND offer_number = ?", companyID, offerNumber).
		First(&offer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &offer, nil
}

// GenerateOfferNumber produces the next sequential offer number per year
func (r *GormOfferRepository) GenerateOfferNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	return nextNumber(ctx, r.db, &sales.Offer{}, companyID, "AN")
}

// Save persists the offer together with its line items
func (r *GormOfferRepository) Save(ctx context.Context, offer *sales.Offer) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(offer).Error
}

// SaveWithLock persists the offer with an optimistic version check.
// The item collection is synced: removed items are deleted.
func (r *GormOfferRepository) SaveWithLock(ctx context.Context, offer *sales.Offer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveWithLock(ctx, tx, offer, offer); err != nil {
			return err
		}
		return syncOfferItems(tx, offer)
	})
}

func syncOfferItems(tx *gorm.DB, offer *sales.Offer) error {
	if len(offer.Items) == 0 {
		return tx.Where("offer_id = ?", offer.ID).Delete(&sales.OfferItem{}).Error
	}
	ids := make([]uuid.UUID, len(offer.Items))
	for i, item := range offer.Items {
		ids[i] = item.ID
	}
	if err := tx.Where("offer_id = ? AND id NOT IN ?", offer.ID, ids).
		Delete(&sales.OfferItem{}).Error; err != nil {
		return err
	}
	return tx.Save(&offer.Items).Error
}

// DeleteForCompany removes an offer within the company scope
func (r *GormOfferRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	return r.deleteForCompany(ctx, companyID, id)
}

var _ sales.OfferRepository = (*GormOfferRepository)(nil)
