package sales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftOffer(t *testing.T) *Offer {
	t.Helper()
	offer, err := NewOffer(uuid.New(), "AN-2026-0001", uuid.New(), "Schulze KG", "Dachausbau")
	require.NoError(t, err)
	return offer
}

func TestOfferTargets(t *testing.T) {
	targets := OfferTargets{
		PlannedHours:        decimal.NewFromInt(40),
		HourlyRate:          decimal.NewFromInt(55),
		PlannedMaterialCost: decimal.NewFromInt(800),
		MarginPercent:       decimal.NewFromInt(15),
	}

	t.Run("planned cost is labor plus material", func(t *testing.T) {
		assert.True(t, targets.PlannedCost().Equal(decimal.NewFromInt(3000)),
			"expected 3000, got %s", targets.PlannedCost())
	})

	t.Run("target price applies the margin", func(t *testing.T) {
		assert.True(t, targets.TargetPrice().Equal(decimal.NewFromInt(3450)),
			"expected 3450, got %s", targets.TargetPrice())
	})

	t.Run("rejects negative components", func(t *testing.T) {
		bad := targets
		bad.MarginPercent = decimal.NewFromInt(-5)
		assert.Error(t, bad.Validate())
	})
}

func TestOffer_SendLocksAndSnapshots(t *testing.T) {
	offer := newDraftOffer(t)
	_, err := offer.AddItem("Dachstuhl", decimal.NewFromInt(1), valueobject.NewMoneyEURFromFloat(2000))
	require.NoError(t, err)
	require.NoError(t, offer.SetTargets(OfferTargets{
		PlannedHours: decimal.NewFromInt(30),
		HourlyRate:   decimal.NewFromInt(50),
	}))

	require.NoError(t, offer.Send())

	assert.True(t, offer.Locked)
	assert.Equal(t, OfferStatusSent, offer.Status)
	assert.True(t, offer.SnapshotNet.Equal(decimal.NewFromInt(2000)))
	assert.True(t, offer.SnapshotGross.Equal(decimal.NewFromInt(2380)))

	t.Run("locked offers refuse modification", func(t *testing.T) {
		_, err := offer.AddItem("Nachtrag", decimal.NewFromInt(1), valueobject.NewMoneyEURFromFloat(100))
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeBusinessRuleViolation))

		err = offer.SetTargets(OfferTargets{})
		assert.True(t, shared.IsCode(err, shared.CodeBusinessRuleViolation))
	})
}

func TestOffer_Transitions(t *testing.T) {
	sentOffer := func(t *testing.T) *Offer {
		offer := newDraftOffer(t)
		_, err := offer.AddItem("Arbeit", decimal.NewFromInt(1), valueobject.NewMoneyEURFromFloat(500))
		require.NoError(t, err)
		require.NoError(t, offer.Send())
		offer.ClearDomainEvents()
		return offer
	}

	t.Run("accept emits the accepted event", func(t *testing.T) {
		offer := sentOffer(t)

		require.NoError(t, offer.Accept())

		assert.Equal(t, OfferStatusAccepted, offer.Status)
		require.NotNil(t, offer.AcceptedAt)
		events := offer.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOfferAccepted, events[0].EventType())
	})

	t.Run("reject is terminal", func(t *testing.T) {
		offer := sentOffer(t)

		require.NoError(t, offer.Reject())
		assert.Error(t, offer.Accept())
		assert.Empty(t, offer.Status.LegalTransitions())
	})

	t.Run("draft cannot be accepted", func(t *testing.T) {
		offer := newDraftOffer(t)

		err := offer.Accept()
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeInvalidTransition))
	})

	t.Run("empty offer cannot be sent", func(t *testing.T) {
		offer := newDraftOffer(t)
		assert.Error(t, offer.Send())
	})
}
