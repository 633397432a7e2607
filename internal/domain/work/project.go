package work

import (
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProjectStatus represents the status of a project
type ProjectStatus string

const (
	ProjectStatusPlanned   ProjectStatus = "PLANNED"
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusBlocked   ProjectStatus = "BLOCKED"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusCancelled ProjectStatus = "CANCELLED"
)

// IsValid checks if the status is a valid ProjectStatus
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanned, ProjectStatusActive, ProjectStatusBlocked, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ProjectStatus
func (s ProjectStatus) String() string {
	return string(s)
}

// LegalTransitions returns the statuses this status may move to.
// Completed and cancelled are terminal.
func (s ProjectStatus) LegalTransitions() []ProjectStatus {
	switch s {
	case ProjectStatusPlanned:
		return []ProjectStatus{ProjectStatusActive, ProjectStatusCancelled}
	case ProjectStatusActive:
		return []ProjectStatus{ProjectStatusBlocked, ProjectStatusCompleted, ProjectStatusCancelled}
	case ProjectStatusBlocked:
		return []ProjectStatus{ProjectStatusActive, ProjectStatusCancelled}
	}
	return nil
}

// CanTransitionTo checks if the status can transition to the target status
func (s ProjectStatus) CanTransitionTo(target ProjectStatus) bool {
	for _, t := range s.LegalTransitions() {
		if t == target {
			return true
		}
	}
	return false
}

func projectTransitionError(from, to ProjectStatus) *shared.DomainError {
	legal := from.LegalTransitions()
	names := make([]string, len(legal))
	for i, l := range legal {
		names[i] = l.String()
	}
	return shared.NewInvalidTransition("Project", from.String(), to.String(), names)
}

// CostSummary aggregates the cost side of a project. It is computed on
// demand from timesheets, stock movements and expenses, never stored
// redundantly on the project row.
type CostSummary struct {
	LaborCost    decimal.Decimal `json:"labor_cost"`
	MaterialCost decimal.Decimal `json:"material_cost"`
	ExpenseCost  decimal.Decimal `json:"expense_cost"`
}

// Total returns the sum of all cost categories
func (c CostSummary) Total() decimal.Decimal {
	return c.LaborCost.Add(c.MaterialCost).Add(c.ExpenseCost)
}

// Project represents the execution of one order: budget, dates, the
// assigned team and the status lifecycle.
type Project struct {
	shared.CompanyAggregateRoot
	Name        string
	CustomerID  uuid.UUID
	OrderID     *uuid.UUID
	Budget      decimal.Decimal
	StartDate   *time.Time
	EndDate     *time.Time
	Team        []uuid.UUID `gorm:"serializer:json"` // assigned employee IDs
	Status      ProjectStatus
	BlockReason string
	CompletedAt *time.Time
	CancelledAt *time.Time
}

// NewProject creates a new project in PLANNED status
func NewProject(companyID uuid.UUID, name string, customerID uuid.UUID, budget decimal.Decimal) (*Project, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Project name cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if budget.IsNegative() {
		return nil, shared.NewDomainError("INVALID_BUDGET", "Budget cannot be negative")
	}

	project := &Project{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		CustomerID:           customerID,
		Budget:               budget,
		Team:                 make([]uuid.UUID, 0),
		Status:               ProjectStatusPlanned,
	}

	project.AddDomainEvent(NewProjectCreatedEvent(project))

	return project, nil
}

// LinkOrder links the originating order
func (p *Project) LinkOrder(orderID uuid.UUID) error {
	if orderID == uuid.Nil {
		return shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	p.OrderID = &orderID
	p.Touch()
	return nil
}

// AssignTeam replaces the set of assigned employees
func (p *Project) AssignTeam(employeeIDs []uuid.UUID) error {
	if p.Status == ProjectStatusCompleted || p.Status == ProjectStatusCancelled {
		return shared.NewBusinessRuleViolation("project_closed",
			"Cannot change the team of a closed project",
			map[string]interface{}{"status": p.Status.String()})
	}
	seen := make(map[uuid.UUID]bool, len(employeeIDs))
	team := make([]uuid.UUID, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		if id == uuid.Nil {
			return shared.NewDomainError("INVALID_EMPLOYEE", "Employee ID cannot be empty")
		}
		if !seen[id] {
			seen[id] = true
			team = append(team, id)
		}
	}
	p.Team = team
	p.Touch()
	return nil
}

// SetDates sets the planned start and end dates
func (p *Project) SetDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return shared.NewDomainError("INVALID_DATES", "End date cannot be before start date")
	}
	p.StartDate = start
	p.EndDate = end
	p.Touch()
	return nil
}

// changeStatus performs a guarded transition and records the status-changed
// event that every project transition emits.
func (p *Project) changeStatus(target ProjectStatus) error {
	if !p.Status.CanTransitionTo(target) {
		return projectTransitionError(p.Status, target)
	}
	previous := p.Status
	p.Status = target
	p.Touch()
	p.AddDomainEvent(NewProjectStatusChangedEvent(p, previous))
	return nil
}

// Activate transitions the project to ACTIVE (from PLANNED or BLOCKED)
func (p *Project) Activate() error {
	if err := p.changeStatus(ProjectStatusActive); err != nil {
		return err
	}
	p.BlockReason = ""
	return nil
}

// Block transitions the project from ACTIVE to BLOCKED
func (p *Project) Block(reason string) error {
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Block reason is required")
	}
	if err := p.changeStatus(ProjectStatusBlocked); err != nil {
		return err
	}
	p.BlockReason = reason
	return nil
}

// Complete transitions the project from ACTIVE to COMPLETED
func (p *Project) Complete() error {
	if err := p.changeStatus(ProjectStatusCompleted); err != nil {
		return err
	}
	now := time.Now()
	p.CompletedAt = &now
	return nil
}

// Cancel transitions the project to CANCELLED
func (p *Project) Cancel() error {
	if err := p.changeStatus(ProjectStatusCancelled); err != nil {
		return err
	}
	now := time.Now()
	p.CancelledAt = &now
	return nil
}

// IsActive returns true if the project is currently being worked on
func (p *Project) IsActive() bool {
	return p.Status == ProjectStatusActive
}

// IsClosed returns true if the project is completed or cancelled
func (p *Project) IsClosed() bool {
	return p.Status == ProjectStatusCompleted || p.Status == ProjectStatusCancelled
}
