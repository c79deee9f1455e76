package project

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/bunjo05/volunteer-faster/core"
)

var (
	ErrNotFound    = errors.New("project not found")
	ErrOrgNotFound = errors.New("organization not found")
)

type (
	Repository interface {
		CreateOrganization(ctx context.Context, org Organization, exec ...core.DBExecutor) (Organization, error)
		GetOrganization(ctx context.Context, id string, exec ...core.DBExecutor) (Organization, error)

		CreateProject(ctx context.Context, prj Project, exec ...core.DBExecutor) (Project, error)
		GetProject(ctx context.Context, id string, exec ...core.DBExecutor) (Project, error)
		// QueryProjects applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on Name or Summary.
		QueryProjects(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Project, error)
		UpdateProject(ctx context.Context, prj Project, exec ...core.DBExecutor) (Project, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CreateOrganization(ctx context.Context, no NewOrganization) (Organization, error) {
	now := time.Now().UTC()
	org := Organization{
		Name:      no.Name,
		Country:   no.Country,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateOrganization(ctx, org)
}

func (svc *Service) GetOrganization(ctx context.Context, id string) (Organization, error) {
	return svc.repo.GetOrganization(ctx, id)
}

func (svc *Service) Create(ctx context.Context, np NewProject) (Project, error) {
	now := time.Now().UTC()
	prj := Project{
		OrganizationID: np.OrganizationID,
		Name:           np.Name,
		Summary:        np.Summary,
		Country:        np.Country,
		DailyFeeCents:  np.DailyFeeCents,
		Includes:       np.Includes,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return svc.repo.CreateProject(ctx, prj)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Project, error) {
	prj, err := svc.repo.GetProject(ctx, id)
	if err != nil {
		return Project{}, err
	}
	prj.Refresh(time.Now().UTC())
	return prj, nil
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Project, error) {
	projects, err := svc.repo.QueryProjects(ctx, filter, ordering)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	for i := range projects {
		projects[i].Refresh(now)
	}
	return projects, nil
}
