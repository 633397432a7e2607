package work

import (
	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event type constants
const (
	EventTypeProjectCreated         = "ProjectCreated"
	EventTypeProjectStatusChanged   = "ProjectStatusChanged"
	EventTypeProjectBudgetExceeded  = "ProjectBudgetExceeded"
	EventTypeTimesheetRecorded      = "TimesheetRecorded"
	EventTypeTimesheetApproved      = "TimesheetApproved"
)

// ProjectCreatedEvent is raised when a new project is created
type ProjectCreatedEvent struct {
	shared.BaseDomainEvent
	ProjectID  uuid.UUID       `json:"project_id"`
	Name       string          `json:"name"`
	CustomerID uuid.UUID       `json:"customer_id"`
	OrderID    *uuid.UUID      `json:"order_id,omitempty"`
	Budget     decimal.Decimal `json:"budget"`
}

// NewProjectCreatedEvent creates a new ProjectCreatedEvent
func NewProjectCreatedEvent(project *Project) *ProjectCreatedEvent {
	return &ProjectCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProjectCreated, AggregateTypeProject, project.ID, project.CompanyID),
		ProjectID:       project.ID,
		Name:            project.Name,
		CustomerID:      project.CustomerID,
		OrderID:         project.OrderID,
		Budget:          project.Budget,
	}
}

// EventType returns the event type name
func (e *ProjectCreatedEvent) EventType() string {
	return EventTypeProjectCreated
}

// ProjectStatusChangedEvent is raised for every project status transition,
// carrying the previous and new status.
type ProjectStatusChangedEvent struct {
	shared.BaseDomainEvent
	ProjectID      uuid.UUID   `json:"project_id"`
	Name           string      `json:"name"`
	PreviousStatus string      `json:"previous_status"`
	NewStatus      string      `json:"new_status"`
	Team           []uuid.UUID `json:"team"`
}

// NewProjectStatusChangedEvent creates a new ProjectStatusChangedEvent
func NewProjectStatusChangedEvent(project *Project, previous ProjectStatus) *ProjectStatusChangedEvent {
	team := make([]uuid.UUID, len(project.Team))
	copy(team, project.Team)
	return &ProjectStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProjectStatusChanged, AggregateTypeProject, project.ID, project.CompanyID),
		ProjectID:       project.ID,
		Name:            project.Name,
		PreviousStatus:  previous.String(),
		NewStatus:       project.Status.String(),
		Team:            team,
	}
}

// EventType returns the event type name
func (e *ProjectStatusChangedEvent) EventType() string {
	return EventTypeProjectStatusChanged
}

// ProjectBudgetExceededEvent is raised by the periodic budget check when a
// project's accumulated cost crosses its budget.
type ProjectBudgetExceededEvent struct {
	shared.BaseDomainEvent
	ProjectID uuid.UUID       `json:"project_id"`
	Name      string          `json:"name"`
	Budget    decimal.Decimal `json:"budget"`
	Cost      decimal.Decimal `json:"cost"`
	Team      []uuid.UUID     `json:"team"`
}

// NewProjectBudgetExceededEvent creates a new ProjectBudgetExceededEvent
func NewProjectBudgetExceededEvent(project *Project, cost decimal.Decimal) *ProjectBudgetExceededEvent {
	team := make([]uuid.UUID, len(project.Team))
	copy(team, project.Team)
	return &ProjectBudgetExceededEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProjectBudgetExceeded, AggregateTypeProject, project.ID, project.CompanyID),
		ProjectID:       project.ID,
		Name:            project.Name,
		Budget:          project.Budget,
		Cost:            cost,
		Team:            team,
	}
}

// EventType returns the event type name
func (e *ProjectBudgetExceededEvent) EventType() string {
	return EventTypeProjectBudgetExceeded
}

// TimesheetRecordedEvent is raised when a new time entry is booked
type TimesheetRecordedEvent struct {
	shared.BaseDomainEvent
	TimesheetID uuid.UUID       `json:"timesheet_id"`
	ProjectID   uuid.UUID       `json:"project_id"`
	EmployeeID  uuid.UUID       `json:"employee_id"`
	Hours       decimal.Decimal `json:"hours"`
	Cost        decimal.Decimal `json:"cost"`
}

// NewTimesheetRecordedEvent creates a new TimesheetRecordedEvent
func NewTimesheetRecordedEvent(ts *Timesheet) *TimesheetRecordedEvent {
	return &TimesheetRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTimesheetRecorded, AggregateTypeTimesheet, ts.ID, ts.CompanyID),
		TimesheetID:     ts.ID,
		ProjectID:       ts.ProjectID,
		EmployeeID:      ts.EmployeeID,
		Hours:           ts.Hours,
		Cost:            ts.Cost,
	}
}

// EventType returns the event type name
func (e *TimesheetRecordedEvent) EventType() string {
	return EventTypeTimesheetRecorded
}

// TimesheetApprovedEvent is raised when a time entry is approved
type TimesheetApprovedEvent struct {
	shared.BaseDomainEvent
	TimesheetID uuid.UUID       `json:"timesheet_id"`
	ProjectID   uuid.UUID       `json:"project_id"`
	EmployeeID  uuid.UUID       `json:"employee_id"`
	ApprovedBy  uuid.UUID       `json:"approved_by"`
	Cost        decimal.Decimal `json:"cost"`
}

// NewTimesheetApprovedEvent creates a new TimesheetApprovedEvent
func NewTimesheetApprovedEvent(ts *Timesheet) *TimesheetApprovedEvent {
	approver := uuid.Nil
	if ts.ApprovedBy != nil {
		approver = *ts.ApprovedBy
	}
	return &TimesheetApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTimesheetApproved, AggregateTypeTimesheet, ts.ID, ts.CompanyID),
		TimesheetID:     ts.ID,
		ProjectID:       ts.ProjectID,
		EmployeeID:      ts.EmployeeID,
		ApprovedBy:      approver,
		Cost:            ts.Cost,
	}
}

// EventType returns the event type name
func (e *TimesheetApprovedEvent) EventType() string {
	return EventTypeTimesheetApproved
}
