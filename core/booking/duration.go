package booking

import (
	"math"
	"time"
)

// DurationDays returns the canonical trip length in whole days: the elapsed
// time between start and end rounded up, never less than 1 once both dates
// are set. A same-day trip therefore counts as 1 day. Either date missing
// yields 0; an end before start also yields 0 and is rejected upstream.
func DurationDays(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	if end.Before(start) {
		return 0
	}
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// DurationDays returns the draft's current trip length, 0 while dates are
// incomplete.
func (d *Draft) DurationDays() int {
	return DurationDays(d.StartDate, d.EndDate)
}

func (b *Booking) ComputeDuration() int {
	return DurationDays(b.StartDate, b.EndDate)
}
