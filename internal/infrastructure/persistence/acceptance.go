package persistence

import (
	"context"

	"github.com/handwerkos/backend/internal/domain/sales"
	"github.com/handwerkos/backend/internal/domain/work"
	"gorm.io/gorm"
)

// GormQuoteAcceptance writes an accepted quote and its follow-up order in
// one transaction, so a crash between the two writes cannot leave an
// accepted quote without an order.
type GormQuoteAcceptance struct {
	db *gorm.DB
}

// NewGormQuoteAcceptance creates a new GormQuoteAcceptance
func NewGormQuoteAcceptance(db *gorm.DB) *GormQuoteAcceptance {
	return &GormQuoteAcceptance{db: db}
}

// SaveAcceptance persists the quote status change (with version check) and
// inserts the new order atomically.
func (a *GormQuoteAcceptance) SaveAcceptance(ctx context.Context, quote *sales.Quote, order *work.Order) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveWithLock(ctx, tx, quote, quote); err != nil {
			return err
		}
		if err := syncQuoteItems(tx, quote); err != nil {
			return err
		}
		return tx.Create(order).Error
	})
}
