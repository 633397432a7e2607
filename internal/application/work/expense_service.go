package work

import (
	"context"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/application/validation"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/work"
	"github.com/handwerkos/backend/internal/infrastructure/auth"
)

// ExpenseService handles expense business operations
type ExpenseService struct {
	expenses work.ExpenseRepository
	projects work.ProjectRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenses work.ExpenseRepository, projects work.ProjectRepository) *ExpenseService {
	return &ExpenseService{
		expenses: expenses,
		projects: projects,
	}
}

// Record books a new expense on an open project
func (s *ExpenseService) Record(ctx context.Context, companyID uuid.UUID, req RecordExpenseRequest) (*ExpenseResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	project, err := s.projects.FindByIDForCompany(ctx, companyID, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.IsClosed() {
		return nil, shared.NewBusinessRuleViolation("project_closed",
			"Expenses cannot be booked on a closed project",
			map[string]interface{}{"status": project.Status.String()})
	}

	expense, err := work.NewExpense(companyID, req.ProjectID, req.EmployeeID, req.ExpenseDate, req.Amount, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.expenses.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// ListByProject retrieves a page of a project's expenses
func (s *ExpenseService) ListByProject(ctx context.Context, companyID, projectID uuid.UUID, filter shared.Filter) ([]ExpenseResponse, error) {
	filter.Normalize()

	expenses, err := s.expenses.FindByProject(ctx, companyID, projectID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses, nil
}

// Approve marks an expense as approved. Only admins and project managers
// may approve.
func (s *ExpenseService) Approve(ctx context.Context, principal auth.Principal, expenseID uuid.UUID) (*ExpenseResponse, error) {
	if !principal.CanApprove() {
		return nil, shared.ErrUnauthorized
	}

	expense, err := s.expenses.FindByIDForCompany(ctx, principal.CompanyID, expenseID)
	if err != nil {
		return nil, err
	}

	if err := expense.Approve(principal.UserID); err != nil {
		return nil, err
	}

	if err := s.expenses.SaveWithLock(ctx, expense); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// Reject marks an expense as rejected. Only admins and project managers
// may reject.
func (s *ExpenseService) Reject(ctx context.Context, principal auth.Principal, expenseID uuid.UUID) (*ExpenseResponse, error) {
	if !principal.CanApprove() {
		return nil, shared.ErrUnauthorized
	}

	expense, err := s.expenses.FindByIDForCompany(ctx, principal.CompanyID, expenseID)
	if err != nil {
		return nil, err
	}

	if err := expense.Reject(); err != nil {
		return nil, err
	}

	if err := s.expenses.SaveWithLock(ctx, expense); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}
