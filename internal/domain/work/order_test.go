package work

import (
	"testing"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder(uuid.New(), "B-2026-0001", uuid.New(), "Meier GmbH", "Badsanierung")
	require.NoError(t, err)
	return order
}

func TestNewOrder(t *testing.T) {
	t.Run("creates an open order and records the created event", func(t *testing.T) {
		order := newOpenOrder(t)

		assert.Equal(t, OrderStatusOpen, order.Status)
		assert.True(t, order.IsOpen())
		assert.True(t, order.Budget.IsZero())

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderCreated, events[0].EventType())
	})

	t.Run("created from a quote keeps the quote reference", func(t *testing.T) {
		quoteID := uuid.New()
		order, err := NewOrderFromQuote(uuid.New(), "B-2026-0002", quoteID, uuid.New(), "Meier GmbH", "Badsanierung")
		require.NoError(t, err)

		require.NotNil(t, order.QuoteID)
		assert.Equal(t, quoteID, *order.QuoteID)
	})

	t.Run("rejects missing order number", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), "", uuid.New(), "Meier GmbH", "")
		assert.Error(t, err)
	})
}

func TestOrder_Budget(t *testing.T) {
	t.Run("falls back to the item total when no budget is set", func(t *testing.T) {
		order := newOpenOrder(t)

		_, err := order.AddItem("Fliesen verlegen", decimal.NewFromInt(5), valueobject.NewMoneyEURFromFloat(40))
		require.NoError(t, err)

		assert.True(t, order.TotalNet.Equal(decimal.NewFromInt(200)),
			"expected 200, got %s", order.TotalNet)
		assert.True(t, order.Budget.Equal(decimal.NewFromInt(200)),
			"expected 200, got %s", order.Budget)
	})

	t.Run("an explicit budget is not overwritten by item changes", func(t *testing.T) {
		order := newOpenOrder(t)

		require.NoError(t, order.SetBudget(decimal.NewFromInt(5000)))
		_, err := order.AddItem("Fliesen verlegen", decimal.NewFromInt(5), valueobject.NewMoneyEURFromFloat(40))
		require.NoError(t, err)

		assert.True(t, order.Budget.Equal(decimal.NewFromInt(5000)),
			"expected 5000, got %s", order.Budget)
	})

	t.Run("rejects a negative budget", func(t *testing.T) {
		order := newOpenOrder(t)
		assert.Error(t, order.SetBudget(decimal.NewFromInt(-1)))
	})
}

func TestOrder_Start(t *testing.T) {
	t.Run("requires a linked project", func(t *testing.T) {
		order := newOpenOrder(t)

		err := order.Start()
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeBusinessRuleViolation))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "order_needs_project", domainErr.Context["rule"])
	})

	t.Run("starts once a project is linked", func(t *testing.T) {
		order := newOpenOrder(t)
		require.NoError(t, order.LinkProject(uuid.New()))
		order.ClearDomainEvents()

		require.NoError(t, order.Start())

		assert.Equal(t, OrderStatusInProgress, order.Status)
		require.NotNil(t, order.StartedAt)

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderStarted, events[0].EventType())
	})

	t.Run("refuses a second start", func(t *testing.T) {
		order := newOpenOrder(t)
		require.NoError(t, order.LinkProject(uuid.New()))
		require.NoError(t, order.Start())

		err := order.Start()
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeBusinessRuleViolation))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "order_already_started", domainErr.Context["rule"])
	})

	t.Run("refuses to relink a different project", func(t *testing.T) {
		order := newOpenOrder(t)
		require.NoError(t, order.LinkProject(uuid.New()))

		err := order.LinkProject(uuid.New())
		assert.True(t, shared.IsCode(err, shared.CodeBusinessRuleViolation))
	})
}

func TestOrder_Transitions(t *testing.T) {
	t.Run("complete requires a started order", func(t *testing.T) {
		order := newOpenOrder(t)

		err := order.Complete()
		assert.True(t, shared.IsCode(err, shared.CodeInvalidTransition))
	})

	t.Run("completes a started order", func(t *testing.T) {
		order := newOpenOrder(t)
		require.NoError(t, order.LinkProject(uuid.New()))
		require.NoError(t, order.Start())
		order.ClearDomainEvents()

		require.NoError(t, order.Complete())

		assert.Equal(t, OrderStatusCompleted, order.Status)
		assert.True(t, order.IsTerminal())
		require.NotNil(t, order.CompletedAt)

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderCompleted, events[0].EventType())
	})

	t.Run("cancel keeps the reason", func(t *testing.T) {
		order := newOpenOrder(t)

		require.NoError(t, order.Cancel("Kunde abgesprungen"))

		assert.Equal(t, OrderStatusCancelled, order.Status)
		assert.Equal(t, "Kunde abgesprungen", order.CancelReason)
	})

	t.Run("cancel requires a reason", func(t *testing.T) {
		order := newOpenOrder(t)
		assert.Error(t, order.Cancel(""))
	})

	t.Run("terminal orders allow no further transitions", func(t *testing.T) {
		order := newOpenOrder(t)
		require.NoError(t, order.Cancel("Kunde abgesprungen"))

		assert.Empty(t, order.Status.LegalTransitions())
		assert.True(t, shared.IsCode(order.Complete(), shared.CodeInvalidTransition))
	})

	t.Run("started orders are immutable", func(t *testing.T) {
		order := newOpenOrder(t)
		require.NoError(t, order.LinkProject(uuid.New()))
		require.NoError(t, order.Start())

		_, err := order.AddItem("Nachtrag", decimal.NewFromInt(1), valueobject.NewMoneyEURFromFloat(100))
		assert.True(t, shared.IsCode(err, shared.CodeBusinessRuleViolation))
		assert.True(t, shared.IsCode(order.SetBudget(decimal.NewFromInt(100)), shared.CodeBusinessRuleViolation))
	})
}
