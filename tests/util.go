package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/bunjo05/volunteer-faster/core/project"
	"github.com/bunjo05/volunteer-faster/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, pwd string,
	roles []string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:          name,
		Email:         email,
		Roles:         roles,
		IsActive:      &isActive,
		EmailVerified: true,
		CreatedAt:     tstamp,
		UpdatedAt:     tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser(): %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser(): %v", err)
	}
	return usr
}

func CreateOrganization(t *testing.T, repo project.Repository, name, country string) project.Organization {
	t.Helper()

	now := time.Now().UTC()
	org, err := repo.CreateOrganization(context.Background(), project.Organization{
		Name:      name,
		Country:   country,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateOrganization(): %v", err)
	}
	return org
}

func CreateProject(
	t *testing.T,
	repo project.Repository,
	orgID, name, country string,
	dailyFeeCents int64,
	includes ...string,
) project.Project {
	t.Helper()

	now := time.Now().UTC()
	prj, err := repo.CreateProject(context.Background(), project.Project{
		OrganizationID: orgID,
		Name:           name,
		Country:        country,
		DailyFeeCents:  dailyFeeCents,
		Includes:       includes,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		t.Fatalf("CreateProject(): %v", err)
	}
	return prj
}
