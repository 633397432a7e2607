package work

import (
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/work"
	"github.com/shopspring/decimal"
)

// ==================== Order DTOs ====================

// OrderItemInput is one line item in a create request
type OrderItemInput struct {
	Description string          `json:"description" validate:"required,min=1,max=500"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
}

// CreateOrderRequest creates a standalone order
type CreateOrderRequest struct {
	CustomerID   uuid.UUID        `json:"customer_id" validate:"required"`
	CustomerName string           `json:"customer_name" validate:"required,min=1,max=200"`
	Title        string           `json:"title" validate:"max=200"`
	Items        []OrderItemInput `json:"items" validate:"dive"`
	Budget       *decimal.Decimal `json:"budget"`
}

// CancelOrderRequest carries the cancellation reason
type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

// OrderItemResponse is one line item in an order response
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Position    int             `json:"position"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// OrderResponse is the API shape of an order
type OrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	OrderNumber  string              `json:"order_number"`
	CustomerID   uuid.UUID           `json:"customer_id"`
	CustomerName string              `json:"customer_name"`
	Title        string              `json:"title"`
	QuoteID      *uuid.UUID          `json:"quote_id,omitempty"`
	ProjectID    *uuid.UUID          `json:"project_id,omitempty"`
	Items        []OrderItemResponse `json:"items"`
	Budget       decimal.Decimal     `json:"budget"`
	TotalNet     decimal.Decimal     `json:"total_net"`
	Status       string              `json:"status"`
	StartedAt    *time.Time          `json:"started_at,omitempty"`
	CompletedAt  *time.Time          `json:"completed_at,omitempty"`
	CancelledAt  *time.Time          `json:"cancelled_at,omitempty"`
	CancelReason string              `json:"cancel_reason,omitempty"`
	Version      int                 `json:"version"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// ToOrderResponse maps an order aggregate to its API shape
func ToOrderResponse(order *work.Order) OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID,
			Position:    item.Position,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}
	return OrderResponse{
		ID:           order.ID,
		OrderNumber:  order.OrderNumber,
		CustomerID:   order.CustomerID,
		CustomerName: order.CustomerName,
		Title:        order.Title,
		QuoteID:      order.QuoteID,
		ProjectID:    order.ProjectID,
		Items:        items,
		Budget:       order.Budget,
		TotalNet:     order.TotalNet,
		Status:       order.Status.String(),
		StartedAt:    order.StartedAt,
		CompletedAt:  order.CompletedAt,
		CancelledAt:  order.CancelledAt,
		CancelReason: order.CancelReason,
		Version:      order.Version,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}

// ==================== Project DTOs ====================

// CreateProjectRequest creates a standalone project
type CreateProjectRequest struct {
	Name       string           `json:"name" validate:"required,min=1,max=200"`
	CustomerID uuid.UUID        `json:"customer_id" validate:"required"`
	Budget     decimal.Decimal  `json:"budget"`
	StartDate  *time.Time       `json:"start_date"`
	EndDate    *time.Time       `json:"end_date"`
	Team       []uuid.UUID      `json:"team"`
}

// BlockProjectRequest carries the blocking reason
type BlockProjectRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

// AssignTeamRequest replaces the assigned team
type AssignTeamRequest struct {
	Team []uuid.UUID `json:"team" validate:"required"`
}

// CostSummaryResponse is the on-demand cost aggregation of a project
type CostSummaryResponse struct {
	LaborCost    decimal.Decimal `json:"labor_cost"`
	MaterialCost decimal.Decimal `json:"material_cost"`
	ExpenseCost  decimal.Decimal `json:"expense_cost"`
	Total        decimal.Decimal `json:"total"`
	Budget       decimal.Decimal `json:"budget"`
	OverBudget   bool            `json:"over_budget"`
}

// ProjectResponse is the API shape of a project
type ProjectResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	OrderID     *uuid.UUID      `json:"order_id,omitempty"`
	Budget      decimal.Decimal `json:"budget"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	Team        []uuid.UUID     `json:"team"`
	Status      string          `json:"status"`
	BlockReason string          `json:"block_reason,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CancelledAt *time.Time      `json:"cancelled_at,omitempty"`
	Version     int             `json:"version"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToProjectResponse maps a project aggregate to its API shape
func ToProjectResponse(project *work.Project) ProjectResponse {
	team := project.Team
	if team == nil {
		team = []uuid.UUID{}
	}
	return ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		CustomerID:  project.CustomerID,
		OrderID:     project.OrderID,
		Budget:      project.Budget,
		StartDate:   project.StartDate,
		EndDate:     project.EndDate,
		Team:        team,
		Status:      project.Status.String(),
		BlockReason: project.BlockReason,
		CompletedAt: project.CompletedAt,
		CancelledAt: project.CancelledAt,
		Version:     project.Version,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// ==================== Timesheet DTOs ====================

// ==================== Expense DTOs ====================

// RecordExpenseRequest books a new expense on a project
type RecordExpenseRequest struct {
	ProjectID   uuid.UUID       `json:"project_id" validate:"required"`
	EmployeeID  uuid.UUID       `json:"employee_id" validate:"required"`
	ExpenseDate time.Time       `json:"expense_date" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Description string          `json:"description" validate:"required,min=1,max=500"`
}

// ExpenseResponse is the API shape of an expense
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProjectID   uuid.UUID       `json:"project_id"`
	EmployeeID  uuid.UUID       `json:"employee_id"`
	ExpenseDate time.Time       `json:"expense_date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	ApprovedAt  *time.Time      `json:"approved_at,omitempty"`
	ApprovedBy  *uuid.UUID      `json:"approved_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToExpenseResponse maps an expense to its API shape
func ToExpenseResponse(expense *work.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          expense.ID,
		ProjectID:   expense.ProjectID,
		EmployeeID:  expense.EmployeeID,
		ExpenseDate: expense.ExpenseDate,
		Amount:      expense.Amount,
		Description: expense.Description,
		Status:      expense.Status.String(),
		ApprovedAt:  expense.ApprovedAt,
		ApprovedBy:  expense.ApprovedBy,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}

// RecordTimesheetRequest books a new time entry
type RecordTimesheetRequest struct {
	ProjectID   uuid.UUID       `json:"project_id" validate:"required"`
	EmployeeID  uuid.UUID       `json:"employee_id" validate:"required"`
	WorkDate    time.Time       `json:"work_date" validate:"required"`
	Hours       decimal.Decimal `json:"hours" validate:"required"`
	HourlyRate  decimal.Decimal `json:"hourly_rate" validate:"required"`
	Description string          `json:"description" validate:"max=500"`
}

// TimesheetResponse is the API shape of a time entry
type TimesheetResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProjectID   uuid.UUID       `json:"project_id"`
	EmployeeID  uuid.UUID       `json:"employee_id"`
	WorkDate    time.Time       `json:"work_date"`
	Hours       decimal.Decimal `json:"hours"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
	Cost        decimal.Decimal `json:"cost"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	ApprovedAt  *time.Time      `json:"approved_at,omitempty"`
	ApprovedBy  *uuid.UUID      `json:"approved_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToTimesheetResponse maps a time entry to its API shape
func ToTimesheetResponse(ts *work.Timesheet) TimesheetResponse {
	return TimesheetResponse{
		ID:          ts.ID,
		ProjectID:   ts.ProjectID,
		EmployeeID:  ts.EmployeeID,
		WorkDate:    ts.WorkDate,
		Hours:       ts.Hours,
		HourlyRate:  ts.HourlyRate,
		Cost:        ts.Cost,
		Description: ts.Description,
		Status:      ts.Status.String(),
		ApprovedAt:  ts.ApprovedAt,
		ApprovedBy:  ts.ApprovedBy,
		CreatedAt:   ts.CreatedAt,
		UpdatedAt:   ts.UpdatedAt,
	}
}
