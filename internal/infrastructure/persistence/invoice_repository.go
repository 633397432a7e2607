package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/finance"
	"github.com/handwerkos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements finance.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	gormCompanyRepository[finance.Invoice]
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{gormCompanyRepository[finance.Invoice]{gormRepository[finance.Invoice]{db: db}}}
}

// FindByInvoiceNumber finds an invoice by its business number
func (r *GormInvoiceRepository) FindByInvoiceNumber(ctx context.Context, companyID uuid.UUID, invoiceNumber string) (*finance.Invoice, error) {
	var invoice finance.Invoice
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND invoice_number = ?", companyID, invoiceNumber).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindDueBefore returns sent invoices whose due date passed the cutoff
func (r *GormInvoiceRepository) FindDueBefore(ctx context.Context, companyID uuid.UUID, cutoff time.Time) ([]finance.Invoice, error) {
	var invoices []finance.Invoice
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND status = ? AND due_date IS NOT NULL AND due_date < ?",
			companyID, finance.InvoiceStatusSent, cutoff).
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindByOrder returns the invoices derived from an order
func (r *GormInvoiceRepository) FindByOrder(ctx context.Context, companyID, orderID uuid.UUID) ([]finance.Invoice, error) {
	var invoices []finance.Invoice
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND order_id = ?", companyID, orderID).
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// GenerateInvoiceNumber produces the next sequential invoice number per year
func (r *GormInvoiceRepository) GenerateInvoiceNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	return nextNumber(ctx, r.db, &finance.Invoice{}, companyID, "RE")
}

// SaveWithLock persists the invoice with an optimistic version check
func (r *GormInvoiceRepository) SaveWithLock(ctx context.Context, invoice *finance.Invoice) error {
	return saveWithLock(ctx, r.db, invoice, invoice)
}

// DeleteForCompany removes an invoice within the company scope
func (r *GormInvoiceRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	return r.deleteForCompany(ctx, companyID, id)
}

var _ finance.InvoiceRepository = (*GormInvoiceRepository)(nil)
