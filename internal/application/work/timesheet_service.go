package work

import (
	"context"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/application/validation"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/work"
	"github.com/handwerkos/backend/internal/infrastructure/auth"
	"github.com/shopspring/decimal"
)

// TimesheetService handles time entry business operations
type TimesheetService struct {
	timesheets     work.TimesheetRepository
	projects       work.ProjectRepository
	eventPublisher shared.EventPublisher
}

// NewTimesheetService creates a new TimesheetService
func NewTimesheetService(timesheets work.TimesheetRepository, projects work.ProjectRepository) *TimesheetService {
	return &TimesheetService{
		timesheets: timesheets,
		projects:   projects,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *TimesheetService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Record books a new time entry on an open project
func (s *TimesheetService) Record(ctx context.Context, companyID uuid.UUID, req RecordTimesheetRequest) (*TimesheetResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	project, err := s.projects.FindByIDForCompany(ctx, companyID, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.IsClosed() {
		return nil, shared.NewBusinessRuleViolation("project_closed",
			"Time cannot be booked on a closed project",
			map[string]interface{}{"status": project.Status.String()})
	}

	ts, err := work.NewTimesheet(companyID, req.ProjectID, req.EmployeeID, req.WorkDate, req.Hours, req.HourlyRate, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.timesheets.Save(ctx, ts); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, ts)

	response := ToTimesheetResponse(ts)
	return &response, nil
}

// Get retrieves a time entry by ID
func (s *TimesheetService) Get(ctx context.Context, companyID, timesheetID uuid.UUID) (*TimesheetResponse, error) {
	ts, err := s.timesheets.FindByIDForCompany(ctx, companyID, timesheetID)
	if err != nil {
		return nil, err
	}
	response := ToTimesheetResponse(ts)
	return &response, nil
}

// ListByProject retrieves a page of a project's time entries
func (s *TimesheetService) ListByProject(ctx context.Context, companyID, projectID uuid.UUID, filter shared.Filter) ([]TimesheetResponse, error) {
	filter.Normalize()

	entries, err := s.timesheets.FindByProject(ctx, companyID, projectID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]TimesheetResponse, len(entries))
	for i := range entries {
		responses[i] = ToTimesheetResponse(&entries[i])
	}
	return responses, nil
}

// UpdateHours changes the booked hours of an unapproved entry
func (s *TimesheetService) UpdateHours(ctx context.Context, companyID, timesheetID uuid.UUID, hours decimal.Decimal) (*TimesheetResponse, error) {
	ts, err := s.timesheets.FindByIDForCompany(ctx, companyID, timesheetID)
	if err != nil {
		return nil, err
	}

	if err := ts.UpdateHours(hours); err != nil {
		return nil, err
	}

	if err := s.timesheets.SaveWithLock(ctx, ts); err != nil {
		return nil, err
	}

	response := ToTimesheetResponse(ts)
	return &response, nil
}

// Approve marks a time entry as approved. Only admins and project managers
// may approve.
func (s *TimesheetService) Approve(ctx context.Context, principal auth.Principal, timesheetID uuid.UUID) (*TimesheetResponse, error) {
	if !principal.CanApprove() {
		return nil, shared.ErrUnauthorized
	}

	ts, err := s.timesheets.FindByIDForCompany(ctx, principal.CompanyID, timesheetID)
	if err != nil {
		return nil, err
	}

	if err := ts.Approve(principal.UserID); err != nil {
		return nil, err
	}

	if err := s.timesheets.SaveWithLock(ctx, ts); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, ts)

	response := ToTimesheetResponse(ts)
	return &response, nil
}

// Reject marks a time entry as rejected. Only admins and project managers
// may reject.
func (s *TimesheetService) Reject(ctx context.Context, principal auth.Principal, timesheetID uuid.UUID) (*TimesheetResponse, error) {
	if !principal.CanApprove() {
		return nil, shared.ErrUnauthorized
	}

	ts, err := s.timesheets.FindByIDForCompany(ctx, principal.CompanyID, timesheetID)
	if err != nil {
		return nil, err
	}

	if err := ts.Reject(); err != nil {
		return nil, err
	}

	if err := s.timesheets.SaveWithLock(ctx, ts); err != nil {
		return nil, err
	}

	response := ToTimesheetResponse(ts)
	return &response, nil
}

func (s *TimesheetService) publishEvents(ctx context.Context, ts *work.Timesheet) {
	if s.eventPublisher == nil {
		return
	}
	events := ts.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	ts.ClearDomainEvents()
}
