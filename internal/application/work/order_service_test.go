package work

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/shared/valueobject"
	"github.com/handwerkos/backend/internal/domain/work"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderServiceUnderTest() (*OrderService, *MockOrderRepository, *MockProjectRepository, *MockOrderWorkflow, *MockEventPublisher) {
	orders := new(MockOrderRepository)
	projects := new(MockProjectRepository)
	workflow := new(MockOrderWorkflow)
	publisher := new(MockEventPublisher)

	service := NewOrderService(orders, projects, workflow)
	service.SetEventPublisher(publisher)

	return service, orders, projects, workflow, publisher
}

func openOrderFixture(t *testing.T, companyID uuid.UUID) *work.Order {
	t.Helper()
	order, err := work.NewOrder(companyID, "B-2026-0001", uuid.New(), "Meier GmbH", "Badsanierung")
	require.NoError(t, err)
	_, err = order.AddItem("Fliesen verlegen", decimal.NewFromInt(5), valueobject.NewMoneyEURFromFloat(40))
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func TestOrderService_Start_CreatesProject(t *testing.T) {
	service, orders, _, workflow, publisher := newOrderServiceUnderTest()
	companyID := uuid.New()
	order := openOrderFixture(t, companyID)

	var savedProject *work.Project
	orders.On("FindByIDForCompany", mock.Anything, companyID, order.ID).Return(order, nil)
	workflow.On("SaveStart", mock.Anything, order, mock.AnythingOfType("*work.Project")).
		Run(func(args mock.Arguments) {
			savedProject = args.Get(2).(*work.Project)
		}).
		Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	resp, err := service.Start(context.Background(), companyID, order.ID)

	require.NoError(t, err)
	assert.Equal(t, work.OrderStatusInProgress.String(), resp.Status)
	require.NotNil(t, resp.ProjectID)

	// the project is created from the order, activated and linked both ways
	require.NotNil(t, savedProject)
	assert.Equal(t, *resp.ProjectID, savedProject.ID)
	assert.Equal(t, "Badsanierung", savedProject.Name)
	assert.Equal(t, order.CustomerID, savedProject.CustomerID)
	assert.True(t, savedProject.IsActive())
	require.NotNil(t, savedProject.OrderID)
	assert.Equal(t, order.ID, *savedProject.OrderID)
	assert.True(t, savedProject.Budget.Equal(order.Budget),
		"expected %s, got %s", order.Budget, savedProject.Budget)

	types := publisher.eventTypes()
	assert.Contains(t, types, work.EventTypeOrderStarted)
	assert.Contains(t, types, work.EventTypeProjectCreated)
	workflow.AssertNumberOfCalls(t, "SaveStart", 1)
}

func TestOrderService_Start_ReusesLinkedProject(t *testing.T) {
	service, orders, projects, workflow, publisher := newOrderServiceUnderTest()
	companyID := uuid.New()
	order := openOrderFixture(t, companyID)

	project, err := work.NewProject(companyID, "Badsanierung", order.CustomerID, order.Budget)
	require.NoError(t, err)
	require.NoError(t, order.LinkProject(project.ID))
	project.ClearDomainEvents()

	orders.On("FindByIDForCompany", mock.Anything, companyID, order.ID).Return(order, nil)
	projects.On("FindByIDForCompany", mock.Anything, companyID, project.ID).Return(project, nil)
	workflow.On("SaveCascade", mock.Anything, order, project).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	resp, err := service.Start(context.Background(), companyID, order.ID)

	require.NoError(t, err)
	assert.Equal(t, work.OrderStatusInProgress.String(), resp.Status)
	assert.True(t, project.IsActive())
	workflow.AssertNotCalled(t, "SaveStart", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_Start_AlreadyStarted(t *testing.T) {
	service, orders, projects, workflow, _ := newOrderServiceUnderTest()
	companyID := uuid.New()
	order := openOrderFixture(t, companyID)

	project, err := work.NewProject(companyID, "Badsanierung", order.CustomerID, order.Budget)
	require.NoError(t, err)
	require.NoError(t, project.Activate())
	require.NoError(t, order.LinkProject(project.ID))
	require.NoError(t, order.Start())
	order.ClearDomainEvents()

	orders.On("FindByIDForCompany", mock.Anything, companyID, order.ID).Return(order, nil)
	projects.On("FindByIDForCompany", mock.Anything, companyID, project.ID).Return(project, nil)

	_, err = service.Start(context.Background(), companyID, order.ID)

	require.Error(t, err)
	assert.True(t, shared.IsCode(err, shared.CodeBusinessRuleViolation))
	workflow.AssertNotCalled(t, "SaveStart", mock.Anything, mock.Anything, mock.Anything)
	workflow.AssertNotCalled(t, "SaveCascade", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_Complete_CascadesProject(t *testing.T) {
	service, orders, projects, workflow, publisher := newOrderServiceUnderTest()
	companyID := uuid.New()
	order := openOrderFixture(t, companyID)

	project, err := work.NewProject(companyID, "Badsanierung", order.CustomerID, order.Budget)
	require.NoError(t, err)
	require.NoError(t, project.Activate())
	require.NoError(t, order.LinkProject(project.ID))
	require.NoError(t, order.Start())
	order.ClearDomainEvents()
	project.ClearDomainEvents()

	orders.On("FindByIDForCompany", mock.Anything, companyID, order.ID).Return(order, nil)
	projects.On("FindByIDForCompany", mock.Anything, companyID, project.ID).Return(project, nil)
	workflow.On("SaveCascade", mock.Anything, order, project).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	resp, err := service.Complete(context.Background(), companyID, order.ID)

	require.NoError(t, err)
	assert.Equal(t, work.OrderStatusCompleted.String(), resp.Status)
	assert.Equal(t, work.ProjectStatusCompleted, project.Status)
	assert.Contains(t, publisher.eventTypes(), work.EventTypeOrderCompleted)
}

func TestOrderService_Complete_BlockedProject(t *testing.T) {
	service, orders, projects, workflow, _ := newOrderServiceUnderTest()
	companyID := uuid.New()
	order := openOrderFixture(t, companyID)

	project, err := work.NewProject(companyID, "Badsanierung", order.CustomerID, order.Budget)
	require.NoError(t, err)
	require.NoError(t, project.Activate())
	require.NoError(t, order.LinkProject(project.ID))
	require.NoError(t, order.Start())
	require.NoError(t, project.Block("Material fehlt"))

	orders.On("FindByIDForCompany", mock.Anything, companyID, order.ID).Return(order, nil)
	projects.On("FindByIDForCompany", mock.Anything, companyID, project.ID).Return(project, nil)

	_, err = service.Complete(context.Background(), companyID, order.ID)

	require.Error(t, err)
	assert.True(t, shared.IsCode(err, shared.CodeInvalidTransition))
	assert.Equal(t, work.OrderStatusInProgress, order.Status)
	workflow.AssertNotCalled(t, "SaveCascade", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_Cancel_SkipsClosedProject(t *testing.T) {
	service, orders, projects, workflow, publisher := newOrderServiceUnderTest()
	companyID := uuid.New()
	order := openOrderFixture(t, companyID)

	project, err := work.NewProject(companyID, "Badsanierung", order.CustomerID, order.Budget)
	require.NoError(t, err)
	require.NoError(t, project.Activate())
	require.NoError(t, order.LinkProject(project.ID))
	require.NoError(t, order.Start())
	require.NoError(t, project.Complete())
	order.ClearDomainEvents()
	project.ClearDomainEvents()

	orders.On("FindByIDForCompany", mock.Anything, companyID, order.ID).Return(order, nil)
	projects.On("FindByIDForCompany", mock.Anything, companyID, project.ID).Return(project, nil)
	orders.On("SaveWithLock", mock.Anything, order).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	resp, err := service.Cancel(context.Background(), companyID, order.ID, CancelOrderRequest{Reason: "Kunde abgesprungen"})

	require.NoError(t, err)
	assert.Equal(t, work.OrderStatusCancelled.String(), resp.Status)
	// the completed project keeps its status
	assert.Equal(t, work.ProjectStatusCompleted, project.Status)
	workflow.AssertNotCalled(t, "SaveCascade", mock.Anything, mock.Anything, mock.Anything)
}
