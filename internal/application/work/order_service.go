package work

import (
	"context"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/application/validation"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/shared/valueobject"
	"github.com/handwerkos/backend/internal/domain/work"
)

// OrderWorkflow persists the multi-aggregate writes of the order lifecycle
// in one transaction. Implemented by the persistence layer.
type OrderWorkflow interface {
	// SaveStart persists a started order together with its freshly created
	// project.
	SaveStart(ctx context.Context, order *work.Order, project *work.Project) error
	// SaveCascade persists an order status change together with the cascaded
	// project status change, both under optimistic locking.
	SaveCascade(ctx context.Context, order *work.Order, project *work.Project) error
}

// OrderService handles order business operations
type OrderService struct {
	orders         work.OrderRepository
	projects       work.ProjectRepository
	workflow       OrderWorkflow
	eventPublisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(orders work.OrderRepository, projects work.ProjectRepository, workflow OrderWorkflow) *OrderService {
	return &OrderService{
		orders:   orders,
		projects: projects,
		workflow: workflow,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new standalone order
func (s *OrderService) Create(ctx context.Context, companyID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	orderNumber, err := s.orders.GenerateOrderNumber(ctx, companyID)
	if err != nil {
		return nil, err
	}

	order, err := work.NewOrder(companyID, orderNumber, req.CustomerID, req.CustomerName, req.Title)
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		if _, err := order.AddItem(item.Description, item.Quantity, valueobject.NewMoneyEUR(item.UnitPrice)); err != nil {
			return nil, err
		}
	}
	if req.Budget != nil {
		if err := order.SetBudget(*req.Budget); err != nil {
			return nil, err
		}
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// Get retrieves an order by ID
func (s *OrderService) Get(ctx context.Context, companyID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orders.FindByIDForCompany(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves a page of the company's orders
func (s *OrderService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]OrderResponse, int64, error) {
	filter.Normalize()

	orders, err := s.orders.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orders.CountForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses, total, nil
}

// Start transitions an order to in-progress. When the order has no project
// yet, one is created from the order's title, customer and budget, activated
// and linked; order and project are persisted in one transaction.
func (s *OrderService) Start(ctx context.Context, companyID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orders.FindByIDForCompany(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}

	if order.ProjectID != nil {
		project, err := s.projects.FindByIDForCompany(ctx, companyID, *order.ProjectID)
		if err != nil {
			return nil, err
		}
		if !project.IsActive() {
			if err := project.Activate(); err != nil {
				return nil, err
			}
		}
		if err := order.Start(); err != nil {
			return nil, err
		}
		if err := s.workflow.SaveCascade(ctx, order, project); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, order)
		s.publishProjectEvents(ctx, project)
		response := ToOrderResponse(order)
		return &response, nil
	}

	name := order.Title
	if name == "" {
		name = order.OrderNumber
	}
	project, err := work.NewProject(companyID, name, order.CustomerID, order.Budget)
	if err != nil {
		return nil, err
	}
	if err := project.LinkOrder(order.ID); err != nil {
		return nil, err
	}
	if err := project.Activate(); err != nil {
		return nil, err
	}
	if err := order.LinkProject(project.ID); err != nil {
		return nil, err
	}
	if err := order.Start(); err != nil {
		return nil, err
	}

	if err := s.workflow.SaveStart(ctx, order, project); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)
	s.publishProjectEvents(ctx, project)

	response := ToOrderResponse(order)
	return &response, nil
}

// Complete transitions an in-progress order to completed and cascades the
// completion to the linked project. A blocked project prevents completion.
func (s *OrderService) Complete(ctx context.Context, companyID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orders.FindByIDForCompany(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}

	var project *work.Project
	if order.ProjectID != nil {
		project, err = s.projects.FindByIDForCompany(ctx, companyID, *order.ProjectID)
		if err != nil {
			return nil, err
		}
	}

	if project != nil && !project.IsClosed() {
		if err := project.Complete(); err != nil {
			return nil, err
		}
	}
	if err := order.Complete(); err != nil {
		return nil, err
	}

	if project != nil {
		if err := s.workflow.SaveCascade(ctx, order, project); err != nil {
			return nil, err
		}
	} else {
		if err := s.orders.SaveWithLock(ctx, order); err != nil {
			return nil, err
		}
	}

	s.publishEvents(ctx, order)
	if project != nil {
		s.publishProjectEvents(ctx, project)
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Cancel cancels an order and cascades the cancellation to the linked
// project unless that project is already closed.
func (s *OrderService) Cancel(ctx context.Context, companyID, orderID uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	order, err := s.orders.FindByIDForCompany(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}

	var project *work.Project
	if order.ProjectID != nil {
		project, err = s.projects.FindByIDForCompany(ctx, companyID, *order.ProjectID)
		if err != nil {
			return nil, err
		}
		if project.IsClosed() {
			project = nil
		}
	}

	if err := order.Cancel(req.Reason); err != nil {
		return nil, err
	}
	if project != nil {
		if err := project.Cancel(); err != nil {
			return nil, err
		}
	}

	if project != nil {
		if err := s.workflow.SaveCascade(ctx, order, project); err != nil {
			return nil, err
		}
	} else {
		if err := s.orders.SaveWithLock(ctx, order); err != nil {
			return nil, err
		}
	}

	s.publishEvents(ctx, order)
	if project != nil {
		s.publishProjectEvents(ctx, project)
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Delete removes an order. Only open orders may be deleted.
func (s *OrderService) Delete(ctx context.Context, companyID, orderID uuid.UUID) error {
	order, err := s.orders.FindByIDForCompany(ctx, companyID, orderID)
	if err != nil {
		return err
	}

	if !order.IsOpen() {
		return shared.NewBusinessRuleViolation("order_not_open",
			"Only open orders can be deleted",
			map[string]interface{}{"status": order.Status.String()})
	}

	return s.orders.DeleteForCompany(ctx, companyID, orderID)
}

func (s *OrderService) publishEvents(ctx context.Context, order *work.Order) {
	if s.eventPublisher == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	order.ClearDomainEvents()
}

func (s *OrderService) publishProjectEvents(ctx context.Context, project *work.Project) {
	if s.eventPublisher == nil {
		return
	}
	events := project.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	project.ClearDomainEvents()
}
