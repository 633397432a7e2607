package work

import (
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TimesheetStatus represents the approval state of a time entry
type TimesheetStatus string

const (
	TimesheetStatusRecorded TimesheetStatus = "RECORDED"
	TimesheetStatusApproved TimesheetStatus = "APPROVED"
	TimesheetStatusRejected TimesheetStatus = "REJECTED"
)

// String returns the string representation of TimesheetStatus
func (s TimesheetStatus) String() string {
	return string(s)
}

// Timesheet is one time entry booked by an employee on a project.
// Approved entries are read-only; their cost feeds the project's labor cost.
type Timesheet struct {
	shared.CompanyAggregateRoot
	ProjectID   uuid.UUID
	EmployeeID  uuid.UUID
	WorkDate    time.Time
	Hours       decimal.Decimal
	HourlyRate  decimal.Decimal
	Cost        decimal.Decimal // Hours * HourlyRate
	Description string
	Status      TimesheetStatus
	ApprovedAt  *time.Time
	ApprovedBy  *uuid.UUID
}

// NewTimesheet records a new time entry
func NewTimesheet(companyID, projectID, employeeID uuid.UUID, workDate time.Time, hours, hourlyRate decimal.Decimal, description string) (*Timesheet, error) {
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project ID cannot be empty")
	}
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee ID cannot be empty")
	}
	if hours.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_HOURS", "Hours must be positive")
	}
	if hours.GreaterThan(decimal.NewFromInt(24)) {
		return nil, shared.NewDomainError("INVALID_HOURS", "Hours cannot exceed 24 per entry")
	}
	if hourlyRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Hourly rate cannot be negative")
	}

	ts := &Timesheet{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		ProjectID:            projectID,
		EmployeeID:           employeeID,
		WorkDate:             workDate,
		Hours:                hours,
		HourlyRate:           hourlyRate,
		Cost:                 hours.Mul(hourlyRate).RoundBank(2),
		Description:          description,
		Status:               TimesheetStatusRecorded,
	}

	ts.AddDomainEvent(NewTimesheetRecordedEvent(ts))

	return ts, nil
}

// UpdateHours changes the booked hours. Approved entries are read-only.
func (t *Timesheet) UpdateHours(hours decimal.Decimal) error {
	if t.Status == TimesheetStatusApproved {
		return shared.NewBusinessRuleViolation("timesheet_approved",
			"Approved time entries are read-only",
			map[string]interface{}{"approved_at": t.ApprovedAt})
	}
	if hours.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_HOURS", "Hours must be positive")
	}
	t.Hours = hours
	t.Cost = hours.Mul(t.HourlyRate).RoundBank(2)
	t.Touch()
	return nil
}

// Approve marks the entry as approved. The caller enforces that the
// approving user is an admin or project manager.
func (t *Timesheet) Approve(approverID uuid.UUID) error {
	if t.Status == TimesheetStatusApproved {
		return shared.NewBusinessRuleViolation("timesheet_approved",
			"Time entry has already been approved",
			map[string]interface{}{"approved_at": t.ApprovedAt})
	}
	if t.Status == TimesheetStatusRejected {
		return shared.NewBusinessRuleViolation("timesheet_rejected",
			"Rejected time entries cannot be approved", nil)
	}
	if approverID == uuid.Nil {
		return shared.NewDomainError("INVALID_APPROVER", "Approver ID cannot be empty")
	}

	now := time.Now()
	t.Status = TimesheetStatusApproved
	t.ApprovedAt = &now
	t.ApprovedBy = &approverID
	t.Touch()

	t.AddDomainEvent(NewTimesheetApprovedEvent(t))

	return nil
}

// Reject marks the entry as rejected
func (t *Timesheet) Reject() error {
	if t.Status == TimesheetStatusApproved {
		return shared.NewBusinessRuleViolation("timesheet_approved",
			"Approved time entries are read-only",
			map[string]interface{}{"approved_at": t.ApprovedAt})
	}
	t.Status = TimesheetStatusRejected
	t.Touch()
	return nil
}

// IsApproved returns true once the entry has been approved
func (t *Timesheet) IsApproved() bool {
	return t.Status == TimesheetStatusApproved
}
