package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/sales"
	"github.com/handwerkos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormQuoteRepository implements sales.QuoteRepository using GORM
type GormQuoteRepository struct {
	gormCompanyRepository[sales.Quote]
}

// NewGormQuoteRepository creates a new GormQuoteRepository
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{gormCompanyRepository[sales.Quote]{gormRepository[sales.Quote]{db: db}}}
}

// FindByIDForCompany loads the quote with its line items
func (r *GormQuoteRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*sales.Quote, error) {
	var quote sales.Quote
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&quote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &quote, nil
}

// FindByQuoteNumber finds a quote by its business number
func (r *GormQuoteRepository) FindByQuoteNumber(ctx context.Context, companyID uuid.UUID, quoteNumber string) (*sales.Quote, error) {
	var quote sales.Quote
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("company_id = ? AND quote_number = ?", companyID, quoteNumber).
		First(&quote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &quote, nil
}

// FindExpirable returns sent quotes whose validity date has passed
func (r *GormQuoteRepository) FindExpirable(ctx context.Context, companyID uuid.UUID) ([]sales.Quote, error) {
	var quotes []sales.Quote
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND status = ? AND valid_until IS NOT NULL AND valid_until < ?",
			companyID, sales.QuoteStatusSent, time.Now()).
		Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// CountByStatus counts the company's quotes in one status
func (r *GormQuoteRepository) CountByStatus(ctx context.Context, companyID uuid.UUID, status sales.QuoteStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sales.Quote{}).
		Where("company_id = ? AND status = ?", companyID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateQuoteNumber produces the next sequential quote number per year
func (r *GormQuoteRepository) GenerateQuoteNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	return nextNumber(ctx, r.db, &sales.Quote{}, companyID, "A")
}

// Save persists the quote together with its line items
func (r *GormQuoteRepository) Save(ctx context.Context, quote *sales.Quote) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(quote).Error
}

// SaveWithLock persists the quote with an optimistic version check.
// The item collection is synced: removed items are deleted.
func (r *GormQuoteRepository) SaveWithLock(ctx context.Context, quote *sales.Quote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveWithLock(ctx, tx, quote, quote); err != nil {
			return err
		}
		return syncQuoteItems(tx, quote)
	})
}

func syncQuoteItems(tx *gorm.DB, quote *sales.Quote) error {
	if len(quote.Items) == 0 {
		return tx.Where("quote_id = ?", quote.ID).Delete(&sales.QuoteItem{}).Error
	}
	ids := make([]uuid.UUID, len(quote.Items))
	for i, item := range quote.Items {
		ids[i] = item.ID
	}
	if err := tx.Where("quote_id = ? AND id NOT IN ?", quote.ID, ids).
		Delete(&sales.QuoteItem{}).Error; err != nil {
		return err
	}
	return tx.Save(&quote.Items).Error
}

// DeleteForCompany removes a quote within the company scope
func (r *GormQuoteRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	return r.deleteForCompany(ctx, companyID, id)
}

var _ sales.QuoteRepository = (*GormQuoteRepository)(nil)

// nextNumber builds a per-company sequential business number like
// "A-2026-0007". The sequence restarts every year.
func nextNumber(ctx context.Context, db *gorm.DB, model interface{}, companyID uuid.UUID, prefix string) (string, error) {
	year := time.Now().Year()
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)

	var count int64
	if err := db.WithContext(ctx).
		Model(model).
		Where("company_id = ? AND created_at >= ?", companyID, start).
		Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%04d", prefix, year, count+1), nil
}
