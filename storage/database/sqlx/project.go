package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/bunjo05/volunteer-faster/core"
	"github.com/bunjo05/volunteer-faster/core/project"
)

const projectColumns = `id, organization_id, name, summary, country, daily_fee_cents, includes,
	is_active, featured, featured_until, created_at, updated_at`

type projectRepository struct {
	exec core.DBExecutor
}

var _ project.Repository = (*projectRepository)(nil) // interface compliance check

func NewProjectRepository(exec core.DBExecutor) *projectRepository {
	return &projectRepository{exec: exec}
}

func (repo projectRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

func (repo projectRepository) CreateOrganization(ctx context.Context, org project.Organization, exec ...core.DBExecutor) (project.Organization, error) {
	org.ID = uuid.NewString()
	q := `
	INSERT INTO organization (id, name, country, verified, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := repo.getExec(exec).ExecContext(ctx, q, org.ID, org.Name, org.Country, org.Verified, org.CreatedAt, org.UpdatedAt)
	if err != nil {
		return project.Organization{}, errors.Wrap(err, "inserting organization")
	}
	return org, nil
}

func (repo projectRepository) GetOrganization(ctx context.Context, id string, exec ...core.DBExecutor) (project.Organization, error) {
	q := `SELECT id, name, country, verified, created_at, updated_at FROM organization WHERE id = $1`
	var org project.Organization
	err := repo.getExec(exec).QueryRowContext(ctx, q, id).Scan(
		&org.ID, &org.Name, &org.Country, &org.Verified, &org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return project.Organization{}, project.ErrOrgNotFound
		}
		return project.Organization{}, errors.Wrap(err, "getting organization")
	}
	return org, nil
}

func scanProject(row rowScanner) (project.Project, error) {
	var (
		prj           project.Project
		includes      pq.StringArray
		featuredUntil null.Time
	)
	err := row.Scan(
		&prj.ID, &prj.OrganizationID, &prj.Name, &prj.Summary, &prj.Country, &prj.DailyFeeCents,
		&includes, &prj.IsActive, &prj.Featured, &featuredUntil, &prj.CreatedAt, &prj.UpdatedAt,
	)
	if err != nil {
		return project.Project{}, err
	}
	prj.Includes = includes
	prj.FeaturedUntil = featuredUntil.Time
	return prj, nil
}

func (repo projectRepository) CreateProject(ctx context.Context, prj project.Project, exec ...core.DBExecutor) (project.Project, error) {
	prj.ID = uuid.NewString()
	q := `
	INSERT INTO project (` + projectColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := repo.getExec(exec).ExecContext(
		ctx, q,
		prj.ID, prj.OrganizationID, prj.Name, prj.Summary, prj.Country, prj.DailyFeeCents,
		pq.Array(prj.Includes), prj.IsActive, prj.Featured,
		null.NewTime(prj.FeaturedUntil, !prj.FeaturedUntil.IsZero()),
		prj.CreatedAt, prj.UpdatedAt,
	)
	if err != nil {
		return project.Project{}, errors.Wrap(err, "inserting project")
	}
	return prj, nil
}

func (repo projectRepository) GetProject(ctx context.Context, id string, exec ...core.DBExecutor) (project.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM project WHERE id = $1`
	prj, err := scanProject(repo.getExec(exec).QueryRowContext(ctx, q, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return project.Project{}, project.ErrNotFound
		}
		return project.Project{}, errors.Wrap(err, "getting project")
	}
	return prj, nil
}

func (repo projectRepository) QueryProjects(ctx context.Context, filter *project.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]project.Project, error) {
	var (
		clauses []string
		args    []interface{}
	)
	if filter != nil {
		filter.Clean()
		if filter.Search != "" {
			like := "%" + filter.Search + "%"
			clauses = append(clauses, `(name ILIKE ? OR summary ILIKE ?)`)
			args = append(args, like, like)
		}
		if filter.Country != "" {
			clauses = append(clauses, `country = ?`)
			args = append(args, filter.Country)
		}
		if filter.Featured != nil {
			clauses = append(clauses, `featured = ?`)
			args = append(args, *filter.Featured)
		}
		if filter.IsActive != nil {
			clauses = append(clauses, `is_active = ?`)
			args = append(args, *filter.IsActive)
		}
	}

	q := `SELECT ` + projectColumns + ` FROM project`
	if len(clauses) > 0 {
		q += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	q += orderingClause(ordering, "featured DESC, created_at DESC")
	q = sqlx.Rebind(sqlx.DOLLAR, q)

	rows, err := repo.getExec(exec).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying projects")
	}
	defer func() { _ = rows.Close() }()

	var projects []project.Project
	for rows.Next() {
		prj, err := scanProject(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning project")
		}
		projects = append(projects, prj)
	}
	return projects, errors.Wrap(rows.Err(), "querying projects")
}

func (repo projectRepository) UpdateProject(ctx context.Context, prj project.Project, exec ...core.DBExecutor) (project.Project, error) {
	q := `
	UPDATE project
	SET name = $2, summary = $3, country = $4, daily_fee_cents = $5, includes = $6,
		is_active = $7, featured = $8, featured_until = $9, updated_at = $10
	WHERE id = $1`
	res, err := repo.getExec(exec).ExecContext(
		ctx, q,
		prj.ID, prj.Name, prj.Summary, prj.Country, prj.DailyFeeCents, pq.Array(prj.Includes),
		prj.IsActive, prj.Featured,
		null.NewTime(prj.FeaturedUntil, !prj.FeaturedUntil.IsZero()),
		prj.UpdatedAt,
	)
	if err != nil {
		return project.Project{}, errors.Wrap(err, "updating project")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return project.Project{}, project.ErrNotFound
	}
	return prj, nil
}
