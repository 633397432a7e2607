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

func newPlannedProject(t *testing.T) *Project {
	t.Helper()
	project, err := NewProject(uuid.New(), "Badsanierung Meier", uuid.New(), decimal.NewFromInt(10000))
	require.NoError(t, err)
	return project
}

func TestNewProject(t *testing.T) {
	t.Run("creates a planned project and records the created event", func(t *testing.T) {
		project := newPlannedProject(t)

		assert.Equal(t, ProjectStatusPlanned, project.Status)
		assert.Empty(t, project.Team)

		events := project.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProjectCreated, events[0].EventType())
	})

	t.Run("rejects a negative budget", func(t *testing.T) {
		_, err := NewProject(uuid.New(), "Badsanierung Meier", uuid.New(), decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestProject_Transitions(t *testing.T) {
	t.Run("every transition records a status-changed event", func(t *testing.T) {
		project := newPlannedProject(t)
		project.ClearDomainEvents()

		require.NoError(t, project.Activate())

		events := project.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProjectStatusChanged, events[0].EventType())

		changed, ok := events[0].(*ProjectStatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, ProjectStatusPlanned.String(), changed.PreviousStatus)
		assert.Equal(t, ProjectStatusActive.String(), changed.NewStatus)
	})

	t.Run("block requires an active project and a reason", func(t *testing.T) {
		project := newPlannedProject(t)

		assert.Error(t, project.Block("Material fehlt"))
		assert.Error(t, project.Block(""))

		require.NoError(t, project.Activate())
		require.NoError(t, project.Block("Material fehlt"))
		assert.Equal(t, ProjectStatusBlocked, project.Status)
		assert.Equal(t, "Material fehlt", project.BlockReason)
	})

	t.Run("unblocking clears the block reason", func(t *testing.T) {
		project := newPlannedProject(t)
		require.NoError(t, project.Activate())
		require.NoError(t, project.Block("Material fehlt"))

		require.NoError(t, project.Activate())

		assert.Equal(t, ProjectStatusActive, project.Status)
		assert.Empty(t, project.BlockReason)
	})

	t.Run("complete requires an active project", func(t *testing.T) {
		project := newPlannedProject(t)

		err := project.Complete()
		assert.True(t, shared.IsCode(err, shared.CodeInvalidTransition))

		require.NoError(t, project.Activate())
		require.NoError(t, project.Complete())
		assert.True(t, project.IsClosed())
		require.NotNil(t, project.CompletedAt)
	})

	t.Run("cancel works from every non-terminal status", func(t *testing.T) {
		for _, prepare := range map[string]func(p *Project){
			"planned": func(p *Project) {},
			"active":  func(p *Project) { require.NoError(t, p.Activate()) },
			"blocked": func(p *Project) {
				require.NoError(t, p.Activate())
				require.NoError(t, p.Block("Material fehlt"))
			},
		} {
			project := newPlannedProject(t)
			prepare(project)

			require.NoError(t, project.Cancel())
			assert.Equal(t, ProjectStatusCancelled, project.Status)
			require.NotNil(t, project.CancelledAt)
		}
	})

	t.Run("closed projects allow no further transitions", func(t *testing.T) {
		project := newPlannedProject(t)
		require.NoError(t, project.Cancel())

		assert.Empty(t, project.Status.LegalTransitions())
		assert.True(t, shared.IsCode(project.Activate(), shared.CodeInvalidTransition))
	})
}

func TestProject_Team(t *testing.T) {
	t.Run("deduplicates assigned employees", func(t *testing.T) {
		project := newPlannedProject(t)
		employee := uuid.New()

		require.NoError(t, project.AssignTeam([]uuid.UUID{employee, employee, uuid.New()}))

		assert.Len(t, project.Team, 2)
	})

	t.Run("refuses team changes on a closed project", func(t *testing.T) {
		project := newPlannedProject(t)
		require.NoError(t, project.Cancel())

		err := project.AssignTeam([]uuid.UUID{uuid.New()})
		assert.True(t, shared.IsCode(err, shared.CodeBusinessRuleViolation))
	})
}

func TestProject_SetDates(t *testing.T) {
	t.Run("rejects an end date before the start date", func(t *testing.T) {
		project := newPlannedProject(t)
		start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, -1)

		assert.Error(t, project.SetDates(&start, &end))
	})

	t.Run("allows open-ended planning", func(t *testing.T) {
		project := newPlannedProject(t)
		start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

		require.NoError(t, project.SetDates(&start, nil))
		require.NotNil(t, project.StartDate)
		assert.Nil(t, project.EndDate)
	})
}

func TestCostSummary_Total(t *testing.T) {
	summary := CostSummary{
		LaborCost:    decimal.NewFromFloat(1200.50),
		MaterialCost: decimal.NewFromFloat(450.25),
		ExpenseCost:  decimal.NewFromFloat(49.25),
	}

	assert.True(t, summary.Total().Equal(decimal.NewFromInt(1700)),
		"expected 1700, got %s", summary.Total())
}
