package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bunjo05/volunteer-faster/core/booking"
	"github.com/bunjo05/volunteer-faster/core/project"
)

type projectApi struct {
	svc *project.Service
}

func registerProjectAPI(g *echo.Group, svc *project.Service) {
	api := projectApi{svc: svc}

	pg := g.Group("/projects")
	pg.GET("", api.query)
	pg.GET("/:id", api.retrieve)
	pg.GET("/:id/funding-aspects", api.fundingAspects)
}

// Handlers

func (api *projectApi) query(ctx echo.Context) error {
	filter := new(project.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []project.Project{})
	}
	// the public catalog only lists active projects
	active := true
	filter.IsActive = &active

	ordering := new(Ordering)
	ordering.Bind(ctx)

	projects, err := api.svc.Query(ctx.Request().Context(), filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying projects")
	}
	if projects == nil {
		projects = []project.Project{}
	}
	return ctx.JSON(http.StatusOK, projects)
}

func (api *projectApi) retrieve(ctx echo.Context) error {
	prj, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, prj)
}

// fundingAspects lists the sponsorship aspects offerable for this project,
// skipping costs the host already covers.
func (api *projectApi) fundingAspects(ctx echo.Context) error {
	prj, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}

	aspects := booking.AvailableAspects(prj)
	payload := make([]AspectResponse, 0, len(aspects))
	for _, a := range aspects {
		payload = append(payload, AspectResponse{Aspect: a, Label: a.Label()})
	}
	return ctx.JSON(http.StatusOK, payload)
}

type AspectResponse struct {
	Aspect booking.Aspect `json:"aspect"`
	Label  string         `json:"label"`
}
