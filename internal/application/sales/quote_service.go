package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/application/validation"
	"github.com/handwerkos/backend/internal/domain/sales"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/shared/valueobject"
	"github.com/handwerkos/backend/internal/domain/work"
)

// QuoteAcceptance persists an accepted quote and its follow-up order in one
// transaction. Implemented by the persistence layer.
type QuoteAcceptance interface {
	SaveAcceptance(ctx context.Context, quote *sales.Quote, order *work.Order) error
}

// QuoteService handles quote business operations
type QuoteService struct {
	quotes         sales.QuoteRepository
	orders         work.OrderRepository
	acceptance     QuoteAcceptance
	eventPublisher shared.EventPublisher
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(quotes sales.QuoteRepository, orders work.OrderRepository, acceptance QuoteAcceptance) *QuoteService {
	return &QuoteService{
		quotes:     quotes,
		orders:     orders,
		acceptance: acceptance,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *QuoteService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new draft quote
func (s *QuoteService) Create(ctx context.Context, companyID uuid.UUID, req CreateQuoteRequest) (*QuoteResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	quoteNumber, err := s.quotes.GenerateQuoteNumber(ctx, companyID)
	if err != nil {
		return nil, err
	}

	quote, err := sales.NewQuote(companyID, quoteNumber, req.CustomerID, req.CustomerName, req.Title)
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		if _, err := quote.AddItem(item.Description, item.Quantity, valueobject.NewMoneyEUR(item.UnitPrice)); err != nil {
			return nil, err
		}
	}
	if req.TaxRate != nil {
		if err := quote.SetTaxRate(*req.TaxRate); err != nil {
			return nil, err
		}
	}
	if req.ValidUntil != nil {
		if err := quote.SetValidUntil(*req.ValidUntil); err != nil {
			return nil, err
		}
	}

	if err := s.quotes.Save(ctx, quote); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, quote)

	response := ToQuoteResponse(quote)
	return &response, nil
}

// Get retrieves a quote by ID
func (s *QuoteService) Get(ctx context.Context, companyID, quoteID uuid.UUID) (*QuoteResponse, error) {
	quote, err := s.quotes.FindByIDForCompany(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}
	response := ToQuoteResponse(quote)
	return &response, nil
}

// List retrieves a page of the company's quotes
func (s *QuoteService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]QuoteResponse, int64, error) {
	filter.Normalize()

	quotes, err := s.quotes.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.quotes.CountForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]QuoteResponse, len(quotes))
	for i := range quotes {
		responses[i] = ToQuoteResponse(&quotes[i])
	}
	return responses, total, nil
}

// Update updates a draft quote's header fields
func (s *QuoteService) Update(ctx context.Context, companyID, quoteID uuid.UUID, req UpdateQuoteRequest) (*QuoteResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	quote, err := s.quotes.FindByIDForCompany(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if !quote.CanModify() {
			return nil, shared.NewBusinessRuleViolation("quote_immutable",
				"Quote can only be edited in draft status",
				map[string]interface{}{"status": quote.Status.String()})
		}
		quote.Title = *req.Title
		quote.Touch()
	}
	if req.TaxRate != nil {
		if err := quote.SetTaxRate(*req.TaxRate); err != nil {
			return nil, err
		}
	}
	if req.ValidUntil != nil {
		if err := quote.SetValidUntil(*req.ValidUntil); err != nil {
			return nil, err
		}
	}

	if err := s.quotes.SaveWithLock(ctx, quote); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, quote)

	response := ToQuoteResponse(quote)
	return &response, nil
}

// AddItem adds a line item to a draft quote
func (s *QuoteService) AddItem(ctx context.Context, companyID, quoteID uuid.UUID, req AddQuoteItemRequest) (*QuoteResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	quote, err := s.quotes.FindByIDForCompany(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}

	if _, err := quote.AddItem(req.Description, req.Quantity, valueobject.NewMoneyEUR(req.UnitPrice)); err != nil {
		return nil, err
	}

	if err := s.quotes.SaveWithLock(ctx, quote); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, quote)

	response := ToQuoteResponse(quote)
	return &response, nil
}

// RemoveItem removes a line item from a draft quote
func (s *QuoteService) RemoveItem(ctx context.Context, companyID, quoteID, itemID uuid.UUID) (*QuoteResponse, error) {
	quote, err := s.quotes.FindByIDForCompany(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}

	if err := quote.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := s.quotes.SaveWithLock(ctx, quote); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, quote)

	response := ToQuoteResponse(quote)
	return &response, nil
}

// Send transitions a quote from draft to sent, freezing its number
func (s *QuoteService) Send(ctx context.Context, companyID, quoteID uuid.UUID) (*QuoteResponse, error) {
	quote, err := s.quotes.FindByIDForCompany(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}

	if err := quote.Send(); err != nil {
		return nil, err
	}

	if err := s.quotes.SaveWithLock(ctx, quote); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, quote)

	response := ToQuoteResponse(quote)
	return &response, nil
}

// Accept transitions a sent quote to accepted and creates the follow-up
// order from the quote's items and customer. Both writes happen in one
// transaction; the QuoteAccepted event carries both payloads.
func (s *QuoteService) Accept(ctx context.Context, companyID, quoteID uuid.UUID) (*AcceptQuoteResponse, error) {
	quote, err := s.quotes.FindByIDForCompany(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}

	if err := quote.Accept(); err != nil {
		return nil, err
	}

	orderNumber, err := s.orders.GenerateOrderNumber(ctx, companyID)
	if err != nil {
		return nil, err
	}

	order, err := work.NewOrderFromQuote(companyID, orderNumber, quote.ID, quote.CustomerID, quote.CustomerName, quote.Title)
	if err != nil {
		return nil, err
	}
	for _, item := range quote.Items {
		if _, err := order.AddItem(item.Description, item.Quantity, valueobject.NewMoneyEUR(item.UnitPrice)); err != nil {
			return nil, err
		}
	}
	if err := order.SetBudget(quote.TotalNet); err != nil {
		return nil, err
	}

	if err := s.acceptance.SaveAcceptance(ctx, quote, order); err != nil {
		return nil, err
	}

	quote.AddDomainEvent(sales.NewQuoteAcceptedEvent(quote, order.ID, order.OrderNumber))
	s.publishEvents(ctx, quote)
	s.publishOrderEvents(ctx, order)

	return &AcceptQuoteResponse{
		Quote:       ToQuoteResponse(quote),
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
	}, nil
}

// Reject transitions a sent quote to rejected
func (s *QuoteService) Reject(ctx context.Context, companyID, quoteID uuid.UUID, req RejectQuoteRequest) (*QuoteResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	quote, err := s.quotes.FindByIDForCompany(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}

	if err := quote.Reject(req.Reason); err != nil {
		return nil, err
	}

	if err := s.quotes.SaveWithLock(ctx, quote); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, quote)

	response := ToQuoteResponse(quote)
	return &response, nil
}

// Expire transitions a sent quote past its validity date to expired
func (s *QuoteService) Expire(ctx context.Context, companyID, quoteID uuid.UUID) (*QuoteResponse, error) {
	quote, err := s.quotes.FindByIDForCompany(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}

	if err := quote.Expire(); err != nil {
		return nil, err
	}

	if err := s.quotes.SaveWithLock(ctx, quote); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, quote)

	response := ToQuoteResponse(quote)
	return &response, nil
}

// Delete removes a quote. Only draft quotes may be deleted.
func (s *QuoteService) Delete(ctx context.Context, companyID, quoteID uuid.UUID) error {
	quote, err := s.quotes.FindByIDForCompany(ctx, companyID, quoteID)
	if err != nil {
		return err
	}

	if !quote.IsDraft() {
		return shared.NewBusinessRuleViolation("quote_not_draft",
			"Only draft quotes can be deleted",
			map[string]interface{}{"status": quote.Status.String()})
	}

	return s.quotes.DeleteForCompany(ctx, companyID, quoteID)
}

func (s *QuoteService) publishEvents(ctx context.Context, quote *sales.Quote) {
	if s.eventPublisher == nil {
		return
	}
	events := quote.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	quote.ClearDomainEvents()
}

func (s *QuoteService) publishOrderEvents(ctx context.Context, order *work.Order) {
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
