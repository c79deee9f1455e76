package main

import (
	"context"
	"fmt"
	"time"

	"github.com/bunjo05/volunteer-faster/core"
	"github.com/bunjo05/volunteer-faster/core/project"
)

func (cli *commandLine) addOrganization(name, country string) error {
	now := time.Now().UTC()
	org, err := cli.prjRepo.CreateOrganization(context.Background(), project.Organization{
		Name:      core.CleanString(name),
		Country:   core.CleanString(country),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return err
	}
	fmt.Printf("organization created: %s\n", org.ID)
	return nil
}

func (cli *commandLine) addProject(orgID, name, country string, dailyFeeCents int64) error {
	ctx := context.Background()

	// the organization must exist
	if _, err := cli.prjRepo.GetOrganization(ctx, orgID); err != nil {
		return err
	}

	now := time.Now().UTC()
	prj, err := cli.prjRepo.CreateProject(ctx, project.Project{
		OrganizationID: orgID,
		Name:           core.CleanString(name),
		Country:        core.CleanString(country),
		DailyFeeCents:  dailyFeeCents,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return err
	}
	fmt.Printf("project created: %s\n", prj.ID)
	return nil
}
