package work

import (
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpenseStatus represents the approval state of an expense
type ExpenseStatus string

const (
	ExpenseStatusRecorded ExpenseStatus = "RECORDED"
	ExpenseStatusApproved ExpenseStatus = "APPROVED"
	ExpenseStatusRejected ExpenseStatus = "REJECTED"
)

// String returns the string representation of ExpenseStatus
func (s ExpenseStatus) String() string {
	return string(s)
}

// Expense is one out-of-pocket cost booked against a project, e.g. parking,
// fuel or disposal fees. Approved expenses feed the project's expense cost.
type Expense struct {
	shared.CompanyAggregateRoot
	ProjectID   uuid.UUID
	EmployeeID  uuid.UUID
	ExpenseDate time.Time
	Amount      decimal.Decimal
	Description string
	Status      ExpenseStatus
	ApprovedAt  *time.Time
	ApprovedBy  *uuid.UUID
}

// NewExpense records a new expense
func NewExpense(companyID, projectID, employeeID uuid.UUID, expenseDate time.Time, amount decimal.Decimal, description string) (*Expense, error) {
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project ID cannot be empty")
	}
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}

	return &Expense{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		ProjectID:            projectID,
		EmployeeID:           employeeID,
		ExpenseDate:          expenseDate,
		Amount:               amount.RoundBank(2),
		Description:          description,
		Status:               ExpenseStatusRecorded,
	}, nil
}

// Approve marks the expense as approved. The caller enforces that the
// approving user is an admin or project manager.
func (e *Expense) Approve(approverID uuid.UUID) error {
	if e.Status == ExpenseStatusApproved {
		return shared.NewBusinessRuleViolation("expense_approved",
			"Expense has already been approved",
			map[string]interface{}{"approved_at": e.ApprovedAt})
	}
	if e.Status == ExpenseStatusRejected {
		return shared.NewBusinessRuleViolation("expense_rejected",
			"Rejected expenses cannot be approved", nil)
	}
	if approverID == uuid.Nil {
		return shared.NewDomainError("INVALID_APPROVER", "Approver ID cannot be empty")
	}

	now := time.Now()
	e.Status = ExpenseStatusApproved
	e.ApprovedAt = &now
	e.ApprovedBy = &approverID
	e.Touch()

	return nil
}

// Reject marks the expense as rejected
func (e *Expense) Reject() error {
	if e.Status == ExpenseStatusApproved {
		return shared.NewBusinessRuleViolation("expense_approved",
			"Approved expenses are read-only",
			map[string]interface{}{"approved_at": e.ApprovedAt})
	}
	e.Status = ExpenseStatusRejected
	e.Touch()
	return nil
}

// IsApproved returns true once the expense has been approved
func (e *Expense) IsApproved() bool {
	return e.Status == ExpenseStatusApproved
}
