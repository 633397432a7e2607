package worker

import (
	"context"
	"fmt"
	"time"

	appfinance "github.com/handwerkos/backend/internal/application/finance"
	appnotification "github.com/handwerkos/backend/internal/application/notification"
	appsales "github.com/handwerkos/backend/internal/application/sales"
	appwork "github.com/handwerkos/backend/internal/application/work"
	"github.com/handwerkos/backend/internal/domain/finance"
	"github.com/handwerkos/backend/internal/domain/sales"
	"github.com/handwerkos/backend/internal/domain/work"
	"go.uber.org/zap"
)

// NewOverdueInvoiceJob sweeps every company for sent invoices whose due
// date has passed and marks them overdue through the service, so the
// InvoiceOverdue event fires as usual.
func NewOverdueInvoiceJob(
	interval time.Duration,
	companies CompanyProvider,
	invoices finance.InvoiceRepository,
	service *appfinance.InvoiceService,
	logger *zap.Logger,
) Job {
	return Job{
		Name:     "overdue_invoice_sweep",
		Interval: interval,
		Run: func(ctx context.Context) error {
			companyIDs, err := companies.ActiveCompanyIDs(ctx)
			if err != nil {
				return fmt.Errorf("failed to enumerate companies: %w", err)
			}
			for _, companyID := range companyIDs {
				due, err := invoices.FindDueBefore(ctx, companyID, time.Now())
				if err != nil {
					return fmt.Errorf("failed to find due invoices for %s: %w", companyID, err)
				}
				for i := range due {
					if _, err := service.MarkOverdue(ctx, companyID, due[i].ID); err != nil {
						// keep sweeping; the next run retries this invoice
						logger.Warn("failed to mark invoice overdue",
							zap.String("invoice_number", due[i].InvoiceNumber),
							zap.Error(err),
						)
						continue
					}
					logger.Info("invoice marked overdue",
						zap.String("invoice_number", due[i].InvoiceNumber),
						zap.String("company_id", companyID.String()),
					)
				}
			}
			return nil
		},
	}
}

// NewQuoteExpiryJob sweeps every company for sent quotes past their
// validity date and expires them through the service.
func NewQuoteExpiryJob(
	interval time.Duration,
	companies CompanyProvider,
	quotes sales.QuoteRepository,
	service *appsales.QuoteService,
	logger *zap.Logger,
) Job {
	return Job{
		Name:     "quote_expiry_sweep",
		Interval: interval,
		Run: func(ctx context.Context) error {
			companyIDs, err := companies.ActiveCompanyIDs(ctx)
			if err != nil {
				return fmt.Errorf("failed to enumerate companies: %w", err)
			}
			for _, companyID := range companyIDs {
				expirable, err := quotes.FindExpirable(ctx, companyID)
				if err != nil {
					return fmt.Errorf("failed to find expirable quotes for %s: %w", companyID, err)
				}
				for i := range expirable {
					if _, err := service.Expire(ctx, companyID, expirable[i].ID); err != nil {
						logger.Warn("failed to expire quote",
							zap.String("quote_number", expirable[i].QuoteNumber),
							zap.Error(err),
						)
						continue
					}
					logger.Info("quote expired",
						zap.String("quote_number", expirable[i].QuoteNumber),
						zap.String("company_id", companyID.String()),
					)
				}
			}
			return nil
		},
	}
}

// NewBudgetCheckJob recomputes the cost summary of every active project and
// raises a budget-exceeded event when the total passes the budget.
func NewBudgetCheckJob(
	interval time.Duration,
	companies CompanyProvider,
	projects work.ProjectRepository,
	service *appwork.ProjectService,
	logger *zap.Logger,
) Job {
	return Job{
		Name:     "project_budget_check",
		Interval: interval,
		Run: func(ctx context.Context) error {
			companyIDs, err := companies.ActiveCompanyIDs(ctx)
			if err != nil {
				return fmt.Errorf("failed to enumerate companies: %w", err)
			}
			for _, companyID := range companyIDs {
				active, err := projects.FindActive(ctx, companyID)
				if err != nil {
					return fmt.Errorf("failed to find active projects for %s: %w", companyID, err)
				}
				for i := range active {
					exceeded, err := service.CheckBudget(ctx, companyID, active[i].ID)
					if err != nil {
						logger.Warn("failed to check project budget",
							zap.String("project", active[i].Name),
							zap.Error(err),
						)
						continue
					}
					if exceeded {
						logger.Info("project budget exceeded",
							zap.String("project", active[i].Name),
							zap.String("company_id", companyID.String()),
						)
					}
				}
			}
			return nil
		},
	}
}

// NewNotificationCleanupJob removes expired notifications
func NewNotificationCleanupJob(
	interval time.Duration,
	service *appnotification.NotificationService,
	logger *zap.Logger,
) Job {
	return Job{
		Name:     "notification_cleanup",
		Interval: interval,
		Run: func(ctx context.Context) error {
			removed, err := service.CleanupExpired(ctx)
			if err != nil {
				return fmt.Errorf("failed to delete expired notifications: %w", err)
			}
			if removed > 0 {
				logger.Info("expired notifications removed", zap.Int64("count", removed))
			}
			return nil
		},
	}
}
