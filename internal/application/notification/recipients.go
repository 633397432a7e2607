package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/domain/work"
)

// RecipientDirectory resolves which users a company-wide notification
// fan-out should reach.
type RecipientDirectory interface {
	CompanyRecipients(ctx context.Context, companyID uuid.UUID) ([]uuid.UUID, error)
}

// ProjectTeamDirectory resolves recipients as the union of all teams
// assigned to the company's active projects. The workflow core carries no
// user directory of its own; the people staffed on running projects are
// the ones who act on workflow notifications.
type ProjectTeamDirectory struct {
	projects work.ProjectRepository
}

// NewProjectTeamDirectory creates a new ProjectTeamDirectory
func NewProjectTeamDirectory(projects work.ProjectRepository) *ProjectTeamDirectory {
	return &ProjectTeamDirectory{projects: projects}
}

// CompanyRecipients returns the deduplicated members of all active
// project teams
func (d *ProjectTeamDirectory) CompanyRecipients(ctx context.Context, companyID uuid.UUID) ([]uuid.UUID, error) {
	projects, err := d.projects.FindActive(ctx, companyID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{})
	var recipients []uuid.UUID
	for i := range projects {
		for _, member := range projects[i].Team {
			if _, ok := seen[member]; ok {
				continue
			}
			seen[member] = struct{}{}
			recipients = append(recipients, member)
		}
	}
	return recipients, nil
}

var _ RecipientDirectory = (*ProjectTeamDirectory)(nil)
