package project

import (
	"time"

	"github.com/bunjo05/volunteer-faster/core"
)

// Organization is the host entity owning projects. Only the fields surfaced
// on the project read model are carried here.
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// Project is a volunteering placement published by a host organization.
// DailyFeeCents is the published per-day project fee used to derive the
// project-fees sponsorship amount; Includes lists human-readable cost
// categories the host already covers (e.g. "Accommodation", "Meals").
type Project struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Summary        string    `json:"summary"`
	Country        string    `json:"country"`
	DailyFeeCents  int64     `json:"daily_fee_cents"`
	Includes       []string  `json:"includes"`
	IsActive       bool      `json:"is_active"`
	Featured       bool      `json:"featured"`
	FeaturedUntil  time.Time `json:"featured_until,omitempty"` // UTC; zero = no expiry
	CreatedAt      time.Time `json:"created_at"`               // UTC
	UpdatedAt      time.Time `json:"updated_at"`               // UTC
}

// Refresh drops an expired featured flag. The stored row is untouched;
// reads recompute the effective state instead of trusting a stale flag.
func (p *Project) Refresh(now time.Time) {
	if p.Featured && !p.FeaturedUntil.IsZero() && now.After(p.FeaturedUntil) {
		p.Featured = false
	}
}

// NewOrganization contains information needed to register a host organization.
type NewOrganization struct {
	Name    string `json:"name" validate:"required"`
	Country string `json:"country" validate:"required"`
}

// NewProject contains information needed to publish a Project.
type NewProject struct {
	OrganizationID string   `json:"organization_id" validate:"required"`
	Name           string   `json:"name" validate:"required"`
	Summary        string   `json:"summary"`
	Country        string   `json:"country" validate:"required"`
	DailyFeeCents  int64    `json:"daily_fee_cents" validate:"gte=0"`
	Includes       []string `json:"includes"`
}

type QueryFilter struct {
	Search   string `query:"search"`
	Country  string `query:"country"`
	Featured *bool  `query:"featured"`
	IsActive *bool  `query:"is_active"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Country = core.CleanString(qf.Country)
}
