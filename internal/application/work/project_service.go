package work

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/application/validation"
	"github.com/handwerkos/backend/internal/domain/inventory"
	"github.com/handwerkos/backend/internal/domain/shared"
	"github.com/handwerkos/backend/internal/domain/work"
)

// ProjectService handles project business operations
type ProjectService struct {
	projects       work.ProjectRepository
	timesheets     work.TimesheetRepository
	expenses       work.ExpenseRepository
	movements      inventory.StockMovementRepository
	eventPublisher shared.EventPublisher
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projects work.ProjectRepository,
	timesheets work.TimesheetRepository,
	expenses work.ExpenseRepository,
	movements inventory.StockMovementRepository,
) *ProjectService {
	return &ProjectService{
		projects:   projects,
		timesheets: timesheets,
		expenses:   expenses,
		movements:  movements,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProjectService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new project in planned status
func (s *ProjectService) Create(ctx context.Context, companyID uuid.UUID, req CreateProjectRequest) (*ProjectResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	project, err := work.NewProject(companyID, req.Name, req.CustomerID, req.Budget)
	if err != nil {
		return nil, err
	}

	if req.StartDate != nil || req.EndDate != nil {
		if err := project.SetDates(req.StartDate, req.EndDate); err != nil {
			return nil, err
		}
	}
	if len(req.Team) > 0 {
		if err := project.AssignTeam(req.Team); err != nil {
			return nil, err
		}
	}

	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, project)

	response := ToProjectResponse(project)
	return &response, nil
}

// Get retrieves a project by ID
func (s *ProjectService) Get(ctx context.Context, companyID, projectID uuid.UUID) (*ProjectResponse, error) {
	project, err := s.projects.FindByIDForCompany(ctx, companyID, projectID)
	if err != nil {
		return nil, err
	}
	response := ToProjectResponse(project)
	return &response, nil
}

// List retrieves a page of the company's projects
func (s *ProjectService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]ProjectResponse, int64, error) {
	filter.Normalize()

	projects, err := s.projects.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.projects.CountForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = ToProjectResponse(&projects[i])
	}
	return responses, total, nil
}

// Activate transitions a planned or blocked project to active
func (s *ProjectService) Activate(ctx context.Context, companyID, projectID uuid.UUID) (*ProjectResponse, error) {
	return s.transition(ctx, companyID, projectID, func(p *work.Project) error {
		return p.Activate()
	})
}

// Unblock returns a blocked project to active
func (s *ProjectService) Unblock(ctx context.Context, companyID, projectID uuid.UUID) (*ProjectResponse, error) {
	return s.transition(ctx, companyID, projectID, func(p *work.Project) error {
		if p.Status != work.ProjectStatusBlocked {
			return shared.NewBusinessRuleViolation("project_not_blocked",
				"Only blocked projects can be unblocked",
				map[string]interface{}{"status": p.Status.String()})
		}
		return p.Activate()
	})
}

// Block transitions an active project to blocked with a reason
func (s *ProjectService) Block(ctx context.Context, companyID, projectID uuid.UUID, req BlockProjectRequest) (*ProjectResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return s.transition(ctx, companyID, projectID, func(p *work.Project) error {
		return p.Block(req.Reason)
	})
}

// Complete transitions an active project to completed
func (s *ProjectService) Complete(ctx context.Context, companyID, projectID uuid.UUID) (*ProjectResponse, error) {
	return s.transition(ctx, companyID, projectID, func(p *work.Project) error {
		return p.Complete()
	})
}

// Cancel cancels a project
func (s *ProjectService) Cancel(ctx context.Context, companyID, projectID uuid.UUID) (*ProjectResponse, error) {
	return s.transition(ctx, companyID, projectID, func(p *work.Project) error {
		return p.Cancel()
	})
}

// AssignTeam replaces the project's assigned team
func (s *ProjectService) AssignTeam(ctx context.Context, companyID, projectID uuid.UUID, req AssignTeamRequest) (*ProjectResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return s.transition(ctx, companyID, projectID, func(p *work.Project) error {
		return p.AssignTeam(req.Team)
	})
}

// SetDates updates the planned start and end dates
func (s *ProjectService) SetDates(ctx context.Context, companyID, projectID uuid.UUID, start, end *time.Time) (*ProjectResponse, error) {
	return s.transition(ctx, companyID, projectID, func(p *work.Project) error {
		return p.SetDates(start, end)
	})
}

// CostSummary computes the project's cost aggregation on demand: approved
// labor, booked material consumption and approved expenses.
func (s *ProjectService) CostSummary(ctx context.Context, companyID, projectID uuid.UUID) (*CostSummaryResponse, error) {
	project, err := s.projects.FindByIDForCompany(ctx, companyID, projectID)
	if err != nil {
		return nil, err
	}

	summary, err := s.computeCosts(ctx, companyID, projectID)
	if err != nil {
		return nil, err
	}

	total := summary.Total()
	return &CostSummaryResponse{
		LaborCost:    summary.LaborCost,
		MaterialCost: summary.MaterialCost,
		ExpenseCost:  summary.ExpenseCost,
		Total:        total,
		Budget:       project.Budget,
		OverBudget:   project.Budget.IsPositive() && total.GreaterThan(project.Budget),
	}, nil
}

// CheckBudget recomputes the project's costs and emits a budget-exceeded
// event when the total passes the budget. Called by the periodic worker.
func (s *ProjectService) CheckBudget(ctx context.Context, companyID, projectID uuid.UUID) (bool, error) {
	project, err := s.projects.FindByIDForCompany(ctx, companyID, projectID)
	if err != nil {
		return false, err
	}
	if !project.Budget.IsPositive() {
		return false, nil
	}

	summary, err := s.computeCosts(ctx, companyID, projectID)
	if err != nil {
		return false, err
	}

	total := summary.Total()
	if !total.GreaterThan(project.Budget) {
		return false, nil
	}

	project.AddDomainEvent(work.NewProjectBudgetExceededEvent(project, total))
	s.publishEvents(ctx, project)
	return true, nil
}

// Delete removes a project. Only planned projects may be deleted.
func (s *ProjectService) Delete(ctx context.Context, companyID, projectID uuid.UUID) error {
	project, err := s.projects.FindByIDForCompany(ctx, companyID, projectID)
	if err != nil {
		return err
	}

	if project.Status != work.ProjectStatusPlanned {
		return shared.NewBusinessRuleViolation("project_not_planned",
			"Only planned projects can be deleted",
			map[string]interface{}{"status": project.Status.String()})
	}

	return s.projects.DeleteForCompany(ctx, companyID, projectID)
}

func (s *ProjectService) computeCosts(ctx context.Context, companyID, projectID uuid.UUID) (work.CostSummary, error) {
	labor, err := s.timesheets.SumApprovedCostByProject(ctx, companyID, projectID)
	if err != nil {
		return work.CostSummary{}, err
	}
	material, err := s.movements.SumConsumptionCostByProject(ctx, companyID, projectID)
	if err != nil {
		return work.CostSummary{}, err
	}
	expense, err := s.expenses.SumApprovedCostByProject(ctx, companyID, projectID)
	if err != nil {
		return work.CostSummary{}, err
	}
	return work.CostSummary{
		LaborCost:    labor,
		MaterialCost: material,
		ExpenseCost:  expense,
	}, nil
}

func (s *ProjectService) transition(ctx context.Context, companyID, projectID uuid.UUID, apply func(*work.Project) error) (*ProjectResponse, error) {
	project, err := s.projects.FindByIDForCompany(ctx, companyID, projectID)
	if err != nil {
		return nil, err
	}

	if err := apply(project); err != nil {
		return nil, err
	}

	if err := s.projects.SaveWithLock(ctx, project); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, project)

	response := ToProjectResponse(project)
	return &response, nil
}

func (s *ProjectService) publishEvents(ctx context.Context, project *work.Project) {
	if s.eventPublisher == nil {
		return
	}
	events := project.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	project.ClearDomainEvents()
}
