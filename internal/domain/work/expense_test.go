package work

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecordedExpense(t *testing.T) *Expense {
	t.Helper()
	expenseDate := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	expense, err := NewExpense(uuid.New(), uuid.New(), uuid.New(), expenseDate,
		decimal.NewFromFloat(23.90), "Parkgebühren Baustelle")
	require.NoError(t, err)
	return expense
}

func TestNewExpense(t *testing.T) {
	t.Run("records an expense rounded to cents", func(t *testing.T) {
		expense := newRecordedExpense(t)

		assert.Equal(t, ExpenseStatusRecorded, expense.Status)
		assert.True(t, expense.Amount.Equal(decimal.NewFromFloat(23.90)),
			"expected 23.90, got %s", expense.Amount)
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		_, err := NewExpense(uuid.New(), uuid.New(), uuid.New(), time.Now(),
			decimal.Zero, "Parkgebühren")
		assert.Error(t, err)
	})

	t.Run("rejects a missing description", func(t *testing.T) {
		_, err := NewExpense(uuid.New(), uuid.New(), uuid.New(), time.Now(),
			decimal.NewFromInt(10), "")
		assert.Error(t, err)
	})
}

func TestExpense_Approval(t *testing.T) {
	t.Run("approve stamps approver and time", func(t *testing.T) {
		expense := newRecordedExpense(t)
		approver := uuid.New()

		require.NoError(t, expense.Approve(approver))

		assert.True(t, expense.IsApproved())
		require.NotNil(t, expense.ApprovedBy)
		assert.Equal(t, approver, *expense.ApprovedBy)
		require.NotNil(t, expense.ApprovedAt)
	})

	t.Run("approve is not repeatable", func(t *testing.T) {
		expense := newRecordedExpense(t)
		require.NoError(t, expense.Approve(uuid.New()))

		err := expense.Approve(uuid.New())
		assert.True(t, shared.IsCode(err, shared.CodeBusinessRuleViolation))
	})

	t.Run("rejected expenses cannot be approved", func(t *testing.T) {
		expense := newRecordedExpense(t)
		require.NoError(t, expense.Reject())

		err := expense.Approve(uuid.New())
		assert.True(t, shared.IsCode(err, shared.CodeBusinessRuleViolation))
	})

	t.Run("approved expenses cannot be rejected", func(t *testing.T) {
		expense := newRecordedExpense(t)
		require.NoError(t, expense.Approve(uuid.New()))

		err := expense.Reject()
		assert.True(t, shared.IsCode(err, shared.CodeBusinessRuleViolation))
	})
}
