package booking

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bunjo05/volunteer-faster/core/project"
)

// ParseAmountCents parses a user-entered decimal money string into integer
// cents. Money never touches floats: whole and fractional parts are parsed
// separately. Unparseable or negative input coerces to 0 so a bad field can
// never corrupt a running total.
func ParseAmountCents(s string) int64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || strings.HasPrefix(s, "-") {
		return 0
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0
	}
	// units*100+99 must stay within int64 or the amount would go negative
	if units > (math.MaxInt64-99)/100 {
		return 0
	}

	var cents int64
	switch {
	case frac == "":
	case len(frac) == 1:
		d, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0
		}
		cents = d * 10
	default:
		// extra fractional digits are truncated
		d, err := strconv.ParseInt(frac[:2], 10, 64)
		if err != nil {
			return 0
		}
		cents = d
	}
	return units*100 + cents
}

// FormatCents renders integer cents as a plain decimal amount, eg. 8000 -> "80.00".
func FormatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// AvailableAspects returns the sponsorship aspects offerable for a project:
// the full set minus aspects whose label appears in the project's inclusions.
func AvailableAspects(prj project.Project) []Aspect {
	excluded := make(map[Aspect]bool, len(inclusionAspects))
	for _, inc := range prj.Includes {
		for label, aspect := range inclusionAspects {
			if strings.Contains(inc, label) {
				excluded[aspect] = true
			}
		}
	}

	aspects := make([]Aspect, 0, len(AllAspects))
	for _, a := range AllAspects {
		if !excluded[a] {
			aspects = append(aspects, a)
		}
	}
	return aspects
}

func aspectAvailable(prj project.Project, aspect Aspect) bool {
	for _, a := range AvailableAspects(prj) {
		if a == aspect {
			return true
		}
	}
	return false
}

// ToggleAspect selects or deselects a sponsorship aspect. Selecting an
// aspect the project does not offer is a no-op, as is deselecting one that
// was never selected. A freshly selected aspect starts at 0 until an amount
// is entered; project fees are derived from the dates instead.
func (d *Draft) ToggleAspect(prj project.Project, aspect Aspect, selected bool) {
	if !aspect.Valid() || !aspectAvailable(prj, aspect) {
		return
	}
	if d.Amounts == nil {
		d.Amounts = make(map[Aspect]int64)
	}
	if selected {
		if _, ok := d.Amounts[aspect]; !ok {
			d.Amounts[aspect] = 0
		}
	} else {
		delete(d.Amounts, aspect)
	}
	d.Recompute(prj)
}

// SetAmount records the requested amount for an already-selected aspect.
// The project-fees amount is derived, never user-set; attempts to set it
// are ignored.
func (d *Draft) SetAmount(prj project.Project, aspect Aspect, amount string) {
	if aspect == AspectProjectFees {
		return
	}
	if _, ok := d.Amounts[aspect]; !ok {
		return
	}
	d.Amounts[aspect] = ParseAmountCents(amount)
	d.Recompute(prj)
}

// SetDates updates the trip window and recomputes everything derived from
// it. An end date before the start date is rejected by the caller before
// this point; Recompute still degrades to a 0 duration if it slips through.
func (d *Draft) SetDates(prj project.Project, start, end time.Time) {
	d.StartDate = start
	d.EndDate = end
	d.Recompute(prj)
}

// Recompute re-derives the project-fees amount and the running total from
// current state. Derived values are never trusted from the client: every
// mutation funnels through here.
func (d *Draft) Recompute(prj project.Project) {
	if _, ok := d.Amounts[AspectProjectFees]; ok {
		d.Amounts[AspectProjectFees] = int64(d.DurationDays()) * prj.DailyFeeCents
	}

	var total int64
	for _, cents := range d.Amounts {
		total += cents
	}
	d.TotalCents = total
}

// SponsorshipItems returns the selected aspects as persisted line items, in
// the canonical aspect order.
func (d *Draft) SponsorshipItems() []SponsorshipItem {
	items := make([]SponsorshipItem, 0, len(d.Amounts))
	for _, a := range AllAspects {
		if cents, ok := d.Amounts[a]; ok {
			items = append(items, SponsorshipItem{Aspect: a, AmountCents: cents})
		}
	}
	return items
}
