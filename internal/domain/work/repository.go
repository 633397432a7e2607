package work

import (
	"context"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	shared.CompanyRepository[Order]
	FindByOrderNumber(ctx context.Context, companyID uuid.UUID, orderNumber string) (*Order, error)
	FindByQuote(ctx context.Context, companyID, quoteID uuid.UUID) (*Order, error)
	CountByStatus(ctx context.Context, companyID uuid.UUID, status OrderStatus) (int64, error)
	GenerateOrderNumber(ctx context.Context, companyID uuid.UUID) (string, error)
	SaveWithLock(ctx context.Context, order *Order) error
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error
}

// ProjectRepository defines persistence operations for projects
type ProjectRepository interface {
	shared.CompanyRepository[Project]
	FindByOrder(ctx context.Context, companyID, orderID uuid.UUID) (*Project, error)
	FindActive(ctx context.Context, companyID uuid.UUID) ([]Project, error)
	SaveWithLock(ctx context.Context, project *Project) error
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error
	// CountActiveByCustomer supports the "customer referenced by active
	// projects" delete guard.
	CountActiveByCustomer(ctx context.Context, companyID, customerID uuid.UUID) (int64, error)
}

// ExpenseRepository defines persistence operations for expenses
type ExpenseRepository interface {
	shared.CompanyRepository[Expense]
	FindByProject(ctx context.Context, companyID, projectID uuid.UUID, filter shared.Filter) ([]Expense, error)
	// SumApprovedCostByProject returns the expense cost of all approved
	// expenses; feeds the project cost summary.
	SumApprovedCostByProject(ctx context.Context, companyID, projectID uuid.UUID) (decimal.Decimal, error)
	SaveWithLock(ctx context.Context, expense *Expense) error
}

// TimesheetRepository defines persistence operations for time entries
type TimesheetRepository interface {
	shared.CompanyRepository[Timesheet]
	FindByProject(ctx context.Context, companyID, projectID uuid.UUID, filter shared.Filter) ([]Timesheet, error)
	// SumApprovedCostByProject returns the labor cost of all approved
	// entries; feeds the project cost summary.
	SumApprovedCostByProject(ctx context.Context, companyID, projectID uuid.UUID) (decimal.Decimal, error)
	SaveWithLock(ctx context.Context, ts *Timesheet) error
}
