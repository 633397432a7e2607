package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftInvoice(t *testing.T) *Invoice {
	t.Helper()
	inv, err := NewInvoice(uuid.New(), "R-2026-0001", uuid.New(), "Meier GmbH", decimal.NewFromInt(1000))
	require.NoError(t, err)
	return inv
}

func sentInvoice(t *testing.T) *Invoice {
	t.Helper()
	inv := newDraftInvoice(t)
	require.NoError(t, inv.Send(time.Now().Add(14*24*time.Hour)))
	return inv
}

func TestNewInvoice(t *testing.T) {
	t.Run("creates a draft with gross computed at the default tax rate", func(t *testing.T) {
		inv := newDraftInvoice(t)

		assert.Equal(t, InvoiceStatusDraft, inv.Status)
		assert.True(t, inv.TotalGross.Equal(decimal.NewFromInt(1190)),
			"expected 1190, got %s", inv.TotalGross)

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInvoiceCreated, events[0].EventType())
	})

	t.Run("rejects a negative amount", func(t *testing.T) {
		_, err := NewInvoice(uuid.New(), "R-2026-0002", uuid.New(), "Meier GmbH", decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestInvoice_UpdateAmount(t *testing.T) {
	t.Run("recomputes gross on draft invoices", func(t *testing.T) {
		inv := newDraftInvoice(t)

		require.NoError(t, inv.UpdateAmount(decimal.NewFromInt(2000)))

		assert.True(t, inv.TotalGross.Equal(decimal.NewFromInt(2380)),
			"expected 2380, got %s", inv.TotalGross)
	})

	t.Run("refuses changes once sent", func(t *testing.T) {
		inv := sentInvoice(t)

		err := inv.UpdateAmount(decimal.NewFromInt(2000))
		assert.True(t, shared.IsCode(err, shared.CodeBusinessRuleViolation))
	})
}

func TestInvoice_Send(t *testing.T) {
	t.Run("sets the due date and records the sent event", func(t *testing.T) {
		inv := newDraftInvoice(t)
		inv.ClearDomainEvents()
		dueDate := time.Now().Add(14 * 24 * time.Hour)

		require.NoError(t, inv.Send(dueDate))

		assert.Equal(t, InvoiceStatusSent, inv.Status)
		require.NotNil(t, inv.SentAt)
		require.NotNil(t, inv.DueDate)
		assert.True(t, inv.IsOpen())

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInvoiceSent, events[0].EventType())
	})

	t.Run("rejects a due date in the past", func(t *testing.T) {
		inv := newDraftInvoice(t)
		assert.Error(t, inv.Send(time.Now().Add(-time.Hour)))
	})

	t.Run("cannot be sent twice", func(t *testing.T) {
		inv := sentInvoice(t)

		err := inv.Send(time.Now().Add(14 * 24 * time.Hour))
		assert.True(t, shared.IsCode(err, shared.CodeInvalidTransition))
	})
}

func TestInvoice_Overdue(t *testing.T) {
	t.Run("draft invoices cannot become overdue", func(t *testing.T) {
		inv := newDraftInvoice(t)

		err := inv.MarkOverdue()
		assert.True(t, shared.IsCode(err, shared.CodeInvalidTransition))
	})

	t.Run("a sent invoice is only overdue after its due date", func(t *testing.T) {
		inv := sentInvoice(t)

		err := inv.MarkOverdue()
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeBusinessRuleViolation))

		past := time.Now().Add(-24 * time.Hour)
		inv.DueDate = &past

		require.NoError(t, inv.MarkOverdue())
		assert.Equal(t, InvoiceStatusOverdue, inv.Status)
		require.NotNil(t, inv.OverdueSince)
		assert.True(t, inv.IsOpen())
	})

	t.Run("overdue invoices can still be paid", func(t *testing.T) {
		inv := sentInvoice(t)
		past := time.Now().Add(-24 * time.Hour)
		inv.DueDate = &past
		require.NoError(t, inv.MarkOverdue())

		require.NoError(t, inv.MarkPaid())
		assert.True(t, inv.IsPaid())
	})
}

func TestInvoice_MarkPaid(t *testing.T) {
	t.Run("settles a sent invoice", func(t *testing.T) {
		inv := sentInvoice(t)
		inv.ClearDomainEvents()

		require.NoError(t, inv.MarkPaid())

		assert.Equal(t, InvoiceStatusPaid, inv.Status)
		require.NotNil(t, inv.PaidAt)
		assert.False(t, inv.IsOpen())

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInvoicePaid, events[0].EventType())
	})

	t.Run("draft invoices cannot be paid", func(t *testing.T) {
		inv := newDraftInvoice(t)

		err := inv.MarkPaid()
		assert.True(t, shared.IsCode(err, shared.CodeInvalidTransition))
	})

	t.Run("paid is terminal", func(t *testing.T) {
		inv := sentInvoice(t)
		require.NoError(t, inv.MarkPaid())

		assert.Empty(t, inv.Status.LegalTransitions())
		assert.True(t, shared.IsCode(inv.MarkOverdue(), shared.CodeInvalidTransition))
	})
}
