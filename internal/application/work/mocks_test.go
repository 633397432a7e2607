package work

import (
	"context"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/work"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of work.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*work.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*work.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]work.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]work.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *work.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*work.Order, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*work.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]work.Order, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).([]work.Order), args.Error(1)
}

func (m *MockOrderRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, companyID uuid.UUID, orderNumber string) (*work.Order, error) {
	args := m.Called(ctx, companyID, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*work.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByQuote(ctx context.Context, companyID, quoteID uuid.UUID) (*work.Order, error) {
	args := m.Called(ctx, companyID, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*work.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context, companyID uuid.UUID, status work.OrderStatus) (int64, error) {
	args := m.Called(ctx, companyID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) GenerateOrderNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	args := m.Called(ctx, companyID)
	return args.String(0), args.Error(1)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, order *work.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

// MockProjectRepository is a mock implementation of work.ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*work.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*work.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]work.Project, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]work.Project), args.Error(1)
}

func (m *MockProjectRepository) Save(ctx context.Context, project *work.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*work.Project, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*work.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]work.Project, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).([]work.Project), args.Error(1)
}

func (m *MockProjectRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) FindByOrder(ctx context.Context, companyID, orderID uuid.UUID) (*work.Project, error) {
	args := m.Called(ctx, companyID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*work.Project), args.Error(1)
}

func (m *MockProjectRepository) FindActive(ctx context.Context, companyID uuid.UUID) ([]work.Project, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]work.Project), args.Error(1)
}

func (m *MockProjectRepository) SaveWithLock(ctx context.Context, project *work.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func (m *MockProjectRepository) CountActiveByCustomer(ctx context.Context, companyID, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID, customerID)
	return args.Get(0).(int64), args.Error(1)
}

// MockTimesheetRepository is a mock implementation of work.TimesheetRepository
type MockTimesheetRepository struct {
	mock.Mock
}

func (m *MockTimesheetRepository) FindByID(ctx context.Context, id uuid.UUID) (*work.Timesheet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*work.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) FindAll(ctx context.Context, filter shared.Filter) ([]work.Timesheet, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]work.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) Save(ctx context.Context, ts *work.Timesheet) error {
	args := m.Called(ctx, ts)
	return args.Error(0)
}

func (m *MockTimesheetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTimesheetRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTimesheetRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*work.Timesheet, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*work.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]work.Timesheet, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).([]work.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTimesheetRepository) FindByProject(ctx context.Context, companyID, projectID uuid.UUID, filter shared.Filter) ([]work.Timesheet, error) {
	args := m.Called(ctx, companyID, projectID, filter)
	return args.Get(0).([]work.Timesheet), args.Error(1)
}

func (m *MockTimesheetRepository) SumApprovedCostByProject(ctx context.Context, companyID, projectID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, projectID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTimesheetRepository) SaveWithLock(ctx context.Context, ts *work.Timesheet) error {
	args := m.Called(ctx, ts)
	return args.Error(0)
}

// MockExpenseRepository is a mock implementation of work.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*work.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*work.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]work.Expense, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]work.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *work.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExpenseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*work.Expense, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*work.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]work.Expense, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).([]work.Expense), args.Error(1)
}

func (m *MockExpenseRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepository) FindByProject(ctx context.Context, companyID, projectID uuid.UUID, filter shared.Filter) ([]work.Expense, error) {
	args := m.Called(ctx, companyID, projectID, filter)
	return args.Get(0).([]work.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SumApprovedCostByProject(ctx context.Context, companyID, projectID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, projectID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExpenseRepository) SaveWithLock(ctx context.Context, expense *work.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

// MockOrderWorkflow is a mock implementation of OrderWorkflow
type MockOrderWorkflow struct {
	mock.Mock
}

func (m *MockOrderWorkflow) SaveStart(ctx context.Context, order *work.Order, project *work.Project) error {
	args := m.Called(ctx, order, project)
	return args.Error(0)
}

func (m *MockOrderWorkflow) SaveCascade(ctx context.Context, order *work.Order, project *work.Project) error {
	args := m.Called(ctx, order, project)
	return args.Error(0)
}

// MockEventPublisher records every published event
type MockEventPublisher struct {
	mock.Mock
	published []shared.DomainEvent
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	m.published = append(m.published, events...)
	return args.Error(0)
}

func (m *MockEventPublisher) eventTypes() []string {
	types := make([]string, len(m.published))
	for i, e := range m.published {
		types[i] = e.EventType()
	}
	return types
}
