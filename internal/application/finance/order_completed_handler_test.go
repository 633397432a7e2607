package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	domainfinance "github.com/handwerkos/backend/internal/domain/finance"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/shared/valueobject"
	"github.com/handwerkos/backend/internal/domain/work"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockInvoiceRepository is a mock implementation of finance.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*domainfinance.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainfinance.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]domainfinance.Invoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domainfinance.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *domainfinance.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*domainfinance.Invoice, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainfinance.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]domainfinance.Invoice, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).([]domainfinance.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) FindByInvoiceNumber(ctx context.Context, companyID uuid.UUID, invoiceNumber string) (*domainfinance.Invoice, error) {
	args := m.Called(ctx, companyID, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainfinance.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindDueBefore(ctx context.Context, companyID uuid.UUID, cutoff time.Time) ([]domainfinance.Invoice, error) {
	args := m.Called(ctx, companyID, cutoff)
	return args.Get(0).([]domainfinance.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByOrder(ctx context.Context, companyID, orderID uuid.UUID) ([]domainfinance.Invoice, error) {
	args := m.Called(ctx, companyID, orderID)
	return args.Get(0).([]domainfinance.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GenerateInvoiceNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	args := m.Called(ctx, companyID)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceRepository) SaveWithLock(ctx context.Context, invoice *domainfinance.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

func completedOrderEvent(t *testing.T, companyID uuid.UUID) *work.OrderCompletedEvent {
	t.Helper()
	order, err := work.NewOrder(companyID, "B-2026-0001", uuid.New(), "Meier GmbH", "Badsanierung")
	require.NoError(t, err)
	_, err = order.AddItem("Fliesen verlegen", decimal.NewFromInt(5), valueobject.NewMoneyEURFromFloat(40))
	require.NoError(t, err)
	require.NoError(t, order.LinkProject(uuid.New()))
	require.NoError(t, order.Start())
	order.ClearDomainEvents()
	require.NoError(t, order.Complete())

	events := order.GetDomainEvents()
	require.Len(t, events, 1)
	completed, ok := events[0].(*work.OrderCompletedEvent)
	require.True(t, ok)
	return completed
}

func TestOrderCompletedHandler_CreatesDraftInvoice(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	handler := NewOrderCompletedHandler(NewInvoiceService(invoices), invoices, zap.NewNop())
	companyID := uuid.New()
	event := completedOrderEvent(t, companyID)

	var savedInvoice *domainfinance.Invoice
	invoices.On("FindByOrder", mock.Anything, companyID, event.OrderID).Return([]domainfinance.Invoice{}, nil)
	invoices.On("GenerateInvoiceNumber", mock.Anything, companyID).Return("R-2026-0001", nil)
	invoices.On("Save", mock.Anything, mock.AnythingOfType("*finance.Invoice")).
		Run(func(args mock.Arguments) {
			savedInvoice = args.Get(1).(*domainfinance.Invoice)
		}).
		Return(nil)

	require.NoError(t, handler.Handle(context.Background(), event))

	require.NotNil(t, savedInvoice)
	assert.Equal(t, "R-2026-0001", savedInvoice.InvoiceNumber)
	assert.Equal(t, domainfinance.InvoiceStatusDraft, savedInvoice.Status)
	assert.Equal(t, event.CustomerID, savedInvoice.CustomerID)
	assert.True(t, savedInvoice.TotalNet.Equal(event.TotalNet),
		"expected %s, got %s", event.TotalNet, savedInvoice.TotalNet)
	require.NotNil(t, savedInvoice.OrderID)
	assert.Equal(t, event.OrderID, *savedInvoice.OrderID)
	require.NotNil(t, savedInvoice.ProjectID)
	assert.Equal(t, *event.ProjectID, *savedInvoice.ProjectID)
}

func TestOrderCompletedHandler_SkipsAlreadyInvoicedOrder(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	handler := NewOrderCompletedHandler(NewInvoiceService(invoices), invoices, zap.NewNop())
	companyID := uuid.New()
	event := completedOrderEvent(t, companyID)

	existing, err := domainfinance.NewInvoice(companyID, "R-2026-0001", event.CustomerID, event.CustomerName, event.TotalNet)
	require.NoError(t, err)
	invoices.On("FindByOrder", mock.Anything, companyID, event.OrderID).Return([]domainfinance.Invoice{*existing}, nil)

	require.NoError(t, handler.Handle(context.Background(), event))

	invoices.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	invoices.AssertNotCalled(t, "GenerateInvoiceNumber", mock.Anything, mock.Anything)
}

func TestOrderCompletedHandler_SkipsZeroTotal(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	handler := NewOrderCompletedHandler(NewInvoiceService(invoices), invoices, zap.NewNop())
	companyID := uuid.New()

	order, err := work.NewOrder(companyID, "B-2026-0002", uuid.New(), "Meier GmbH", "")
	require.NoError(t, err)
	require.NoError(t, order.LinkProject(uuid.New()))
	require.NoError(t, order.Start())
	order.ClearDomainEvents()
	require.NoError(t, order.Complete())
	event := order.GetDomainEvents()[0].(*work.OrderCompletedEvent)

	require.NoError(t, handler.Handle(context.Background(), event))

	invoices.AssertNotCalled(t, "FindByOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderCompletedHandler_RejectsForeignEvents(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	handler := NewOrderCompletedHandler(NewInvoiceService(invoices), invoices, zap.NewNop())

	order, err := work.NewOrder(uuid.New(), "B-2026-0003", uuid.New(), "Meier GmbH", "")
	require.NoError(t, err)

	err = handler.Handle(context.Background(), work.NewOrderCreatedEvent(order))
	assert.Error(t, err)
}
