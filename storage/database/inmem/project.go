package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/bunjo05/volunteer-faster/core"
	"github.com/bunjo05/volunteer-faster/core/project"
)

type projectRepository struct {
	db *DB
}

var _ project.Repository = (*projectRepository)(nil) // interface compliance check

func NewProjectRepository(db *DB) *projectRepository {
	return &projectRepository{db: db}
}

func (repo *projectRepository) CreateOrganization(ctx context.Context, org project.Organization, exec ...core.DBExecutor) (project.Organization, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	org.ID = uuid.NewString()
	repo.db.orgs[org.ID] = &org
	return org, nil
}

func (repo *projectRepository) GetOrganization(ctx context.Context, id string, exec ...core.DBExecutor) (project.Organization, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if org, ok := repo.db.orgs[id]; ok {
		return *org, nil
	}
	return project.Organization{}, project.ErrOrgNotFound
}

func (repo *projectRepository) CreateProject(ctx context.Context, prj project.Project, exec ...core.DBExecutor) (project.Project, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	prj.ID = uuid.NewString()
	repo.db.projects[prj.ID] = &prj
	return prj, nil
}

func (repo *projectRepository) GetProject(ctx context.Context, id string, exec ...core.DBExecutor) (project.Project, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if prj, ok := repo.db.projects[id]; ok {
		return *prj, nil
	}
	return project.Project{}, project.ErrNotFound
}

func (repo *projectRepository) QueryProjects(ctx context.Context, filter *project.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]project.Project, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	projects := make([]project.Project, 0, len(repo.db.projects))
	for _, prj := range repo.db.projects {
		if filter == nil || matchesProjectFilter(*prj, filter) {
			projects = append(projects, *prj)
		}
	}

	sort.Slice(projects, func(i, j int) bool {
		if projects[i].Featured != projects[j].Featured {
			return projects[i].Featured
		}
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects, nil
}

func matchesProjectFilter(prj project.Project, filter *project.QueryFilter) bool {
	filter.Clean()
	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(prj.Name), search) &&
			!strings.Contains(strings.ToLower(prj.Summary), search) {
			return false
		}
	}
	if filter.Country != "" && !strings.EqualFold(prj.Country, filter.Country) {
		return false
	}
	if filter.Featured != nil && prj.Featured != *filter.Featured {
		return false
	}
	if filter.IsActive != nil && prj.IsActive != *filter.IsActive {
		return false
	}
	return true
}

func (repo *projectRepository) UpdateProject(ctx context.Context, prj project.Project, exec ...core.DBExecutor) (project.Project, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.projects[prj.ID]; !ok {
		return project.Project{}, project.ErrNotFound
	}
	repo.db.projects[prj.ID] = &prj
	return prj, nil
}
