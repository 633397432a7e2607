package work

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/work"
	"github.com/handwerkos/backend/internal/infrastructure/auth"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTimesheetServiceUnderTest() (*TimesheetService, *MockTimesheetRepository, *MockProjectRepository, *MockEventPublisher) {
	timesheets := new(MockTimesheetRepository)
	projects := new(MockProjectRepository)
	publisher := new(MockEventPublisher)

	service := NewTimesheetService(timesheets, projects)
	service.SetEventPublisher(publisher)

	return service, timesheets, projects, publisher
}

func recordedTimesheetFixture(t *testing.T, companyID uuid.UUID) *work.Timesheet {
	t.Helper()
	ts, err := work.NewTimesheet(companyID, uuid.New(), uuid.New(),
		time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		decimal.NewFromFloat(7.5), decimal.NewFromInt(55), "Fliesen verlegt")
	require.NoError(t, err)
	ts.ClearDomainEvents()
	return ts
}

func approverPrincipal(companyID uuid.UUID) auth.Principal {
	return auth.Principal{
		CompanyID:      companyID,
		UserID:         uuid.New(),
		Username:       "meister",
		ProjectManager: true,
	}
}

func TestTimesheetService_Record(t *testing.T) {
	t.Run("books time on an active project", func(t *testing.T) {
		service, timesheets, projects, publisher := newTimesheetServiceUnderTest()
		companyID := uuid.New()
		project, err := work.NewProject(companyID, "Badsanierung", uuid.New(), decimal.NewFromInt(10000))
		require.NoError(t, err)
		require.NoError(t, project.Activate())

		projects.On("FindByIDForCompany", mock.Anything, companyID, project.ID).Return(project, nil)
		timesheets.On("Save", mock.Anything, mock.AnythingOfType("*work.Timesheet")).Return(nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resp, err := service.Record(context.Background(), companyID, RecordTimesheetRequest{
			ProjectID:  project.ID,
			EmployeeID: uuid.New(),
			WorkDate:   time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
			Hours:      decimal.NewFromFloat(7.5),
			HourlyRate: decimal.NewFromInt(55),
		})

		require.NoError(t, err)
		assert.True(t, resp.Cost.Equal(decimal.NewFromFloat(412.50)),
			"expected 412.50, got %s", resp.Cost)
		assert.Contains(t, publisher.eventTypes(), work.EventTypeTimesheetRecorded)
	})

	t.Run("refuses closed projects", func(t *testing.T) {
		service, timesheets, projects, _ := newTimesheetServiceUnderTest()
		companyID := uuid.New()
		project, err := work.NewProject(companyID, "Badsanierung", uuid.New(), decimal.NewFromInt(10000))
		require.NoError(t, err)
		require.NoError(t, project.Cancel())

		projects.On("FindByIDForCompany", mock.Anything, companyID, project.ID).Return(project, nil)

		_, err = service.Record(context.Background(), companyID, RecordTimesheetRequest{
			ProjectID:  project.ID,
			EmployeeID: uuid.New(),
			WorkDate:   time.Now(),
			Hours:      decimal.NewFromInt(8),
			HourlyRate: decimal.NewFromInt(55),
		})

		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeBusinessRuleViolation))
		timesheets.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestTimesheetService_Approve(t *testing.T) {
	t.Run("requires an approver role", func(t *testing.T) {
		service, timesheets, _, _ := newTimesheetServiceUnderTest()
		companyID := uuid.New()
		worker := auth.Principal{CompanyID: companyID, UserID: uuid.New(), Username: "geselle"}

		_, err := service.Approve(context.Background(), worker, uuid.New())

		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeUnauthorized))
		timesheets.AssertNotCalled(t, "FindByIDForCompany", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stamps the approving user", func(t *testing.T) {
		service, timesheets, _, publisher := newTimesheetServiceUnderTest()
		companyID := uuid.New()
		principal := approverPrincipal(companyID)
		ts := recordedTimesheetFixture(t, companyID)

		timesheets.On("FindByIDForCompany", mock.Anything, companyID, ts.ID).Return(ts, nil)
		timesheets.On("SaveWithLock", mock.Anything, ts).Return(nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resp, err := service.Approve(context.Background(), principal, ts.ID)

		require.NoError(t, err)
		assert.Equal(t, work.TimesheetStatusApproved.String(), resp.Status)
		require.NotNil(t, ts.ApprovedBy)
		assert.Equal(t, principal.UserID, *ts.ApprovedBy)
		assert.Contains(t, publisher.eventTypes(), work.EventTypeTimesheetApproved)
	})

	t.Run("admins may approve as well", func(t *testing.T) {
		service, timesheets, _, publisher := newTimesheetServiceUnderTest()
		companyID := uuid.New()
		admin := auth.Principal{CompanyID: companyID, UserID: uuid.New(), Username: "chefin", Admin: true}
		ts := recordedTimesheetFixture(t, companyID)

		timesheets.On("FindByIDForCompany", mock.Anything, companyID, ts.ID).Return(ts, nil)
		timesheets.On("SaveWithLock", mock.Anything, ts).Return(nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		_, err := service.Approve(context.Background(), admin, ts.ID)

		require.NoError(t, err)
		assert.True(t, ts.IsApproved())
	})
}

func TestTimesheetService_Reject(t *testing.T) {
	t.Run("requires an approver role", func(t *testing.T) {
		service, _, _, _ := newTimesheetServiceUnderTest()
		worker := auth.Principal{CompanyID: uuid.New(), UserID: uuid.New()}

		_, err := service.Reject(context.Background(), worker, uuid.New())

		assert.True(t, shared.IsCode(err, shared.CodeUnauthorized))
	})

	t.Run("rejects a recorded entry", func(t *testing.T) {
		service, timesheets, _, _ := newTimesheetServiceUnderTest()
		companyID := uuid.New()
		principal := approverPrincipal(companyID)
		ts := recordedTimesheetFixture(t, companyID)

		timesheets.On("FindByIDForCompany", mock.Anything, companyID, ts.ID).Return(ts, nil)
		timesheets.On("SaveWithLock", mock.Anything, ts).Return(nil)

		resp, err := service.Reject(context.Background(), principal, ts.ID)

		require.NoError(t, err)
		assert.Equal(t, work.TimesheetStatusRejected.String(), resp.Status)
	})
}
