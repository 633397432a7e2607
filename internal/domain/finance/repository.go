package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
)

// InvoiceRepository defines persistence operations for invoices
type InvoiceRepository interface {
	shared.CompanyRepository[Invoice]
	FindByInvoiceNumber(ctx context.Context, companyID uuid.UUID, invoiceNumber string) (*Invoice, error)
	// FindDueBefore returns sent invoices whose due date has passed;
	// used by the daily overdue sweep.
	FindDueBefore(ctx context.Context, companyID uuid.UUID, cutoff time.Time) ([]Invoice, error)
	FindByOrder(ctx context.Context, companyID, orderID uuid.UUID) ([]Invoice, error)
	GenerateInvoiceNumber(ctx context.Context, companyID uuid.UUID) (string, error)
	SaveWithLock(ctx context.Context, invoice *Invoice) error
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error
}
