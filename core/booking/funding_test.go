package booking

import (
	"reflect"
	"testing"
	"time"

	"github.com/bunjo05/volunteer-faster/core/project"
)

func TestParseAmountCents(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{name: "empty", in: "", want: 0},
		{name: "whitespace", in: "   ", want: 0},
		{name: "garbage", in: "lol", want: 0},
		{name: "negative", in: "-50", want: 0},
		{name: "whole", in: "50", want: 5000},
		{name: "whole with fraction", in: "50.25", want: 5025},
		{name: "single fractional digit", in: "50.5", want: 5050},
		{name: "extra fractional digits truncated", in: "50.259", want: 5025},
		{name: "fraction only", in: ".75", want: 75},
		{name: "thousands separators", in: "1,250.00", want: 125000},
		{name: "zero", in: "0", want: 0},
		{name: "trailing dot", in: "80.", want: 8000},
		{name: "garbage fraction", in: "50.xx", want: 0},
		{name: "whole part past the int64 edge", in: "92233720368547758.07", want: 0},
		{name: "longer than int64", in: "999999999999999999999", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAmountCents(tt.in); got != tt.want {
				t.Errorf("ParseAmountCents(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{50, "0.50"},
		{8000, "80.00"},
		{125025, "1250.25"},
	}
	for _, tt := range tests {
		if got := FormatCents(tt.cents); got != tt.want {
			t.Errorf("FormatCents(%v) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestAvailableAspects(t *testing.T) {
	tests := []struct {
		name     string
		includes []string
		want     []Aspect
	}{
		{
			name: "nothing included",
			want: AllAspects,
		},
		{
			name:     "accommodation included",
			includes: []string{"Accommodation"},
			want:     []Aspect{AspectTravel, AspectMeals, AspectLivingExpenses, AspectVisaFees, AspectProjectFees},
		},
		{
			name:     "meals included",
			includes: []string{"3 Meals per day"},
			want:     []Aspect{AspectTravel, AspectAccommodation, AspectLivingExpenses, AspectVisaFees, AspectProjectFees},
		},
		{
			name:     "both included",
			includes: []string{"Accommodation", "Meals"},
			want:     []Aspect{AspectTravel, AspectLivingExpenses, AspectVisaFees, AspectProjectFees},
		},
		{
			name:     "unrelated inclusions",
			includes: []string{"Airport pickup", "WiFi"},
			want:     AllAspects,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prj := project.Project{Includes: tt.includes}
			if got := AvailableAspects(prj); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AvailableAspects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDraft_ToggleAspect(t *testing.T) {
	prj := project.Project{DailyFeeCents: 2000, Includes: []string{"Accommodation"}}

	d := Draft{Amounts: make(map[Aspect]int64)}
	d.ToggleAspect(prj, AspectTravel, true)
	if _, ok := d.Amounts[AspectTravel]; !ok {
		t.Fatal("travel should be selected")
	}
	if d.Amounts[AspectTravel] != 0 {
		t.Errorf("fresh selection should start at 0, got %v", d.Amounts[AspectTravel])
	}

	// unavailable aspect is a no-op
	d.ToggleAspect(prj, AspectAccommodation, true)
	if _, ok := d.Amounts[AspectAccommodation]; ok {
		t.Error("accommodation is covered by the project and must not be selectable")
	}

	// invalid aspect is a no-op
	d.ToggleAspect(prj, Aspect("lol"), true)
	if _, ok := d.Amounts[Aspect("lol")]; ok {
		t.Error("invalid aspect must not be selectable")
	}

	// toggling again keeps the entered amount
	d.Amounts[AspectTravel] = 30000
	d.ToggleAspect(prj, AspectTravel, true)
	if d.Amounts[AspectTravel] != 30000 {
		t.Errorf("re-selecting must not reset the amount, got %v", d.Amounts[AspectTravel])
	}

	// deselect drops the entry and the total
	d.ToggleAspect(prj, AspectTravel, false)
	if _, ok := d.Amounts[AspectTravel]; ok {
		t.Error("deselected aspect should be removed")
	}
	if d.TotalCents != 0 {
		t.Errorf("total should drop to 0, got %v", d.TotalCents)
	}
}

func TestDraft_SetAmount(t *testing.T) {
	prj := project.Project{DailyFeeCents: 2000}

	d := Draft{
		StartDate: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC),
		Amounts:   make(map[Aspect]int64),
	}
	d.ToggleAspect(prj, AspectTravel, true)
	d.ToggleAspect(prj, AspectProjectFees, true)

	// 4 days x 20.00
	if d.Amounts[AspectProjectFees] != 8000 {
		t.Errorf("project fees = %v, want 8000", d.Amounts[AspectProjectFees])
	}

	d.SetAmount(prj, AspectTravel, "150.00")
	if d.Amounts[AspectTravel] != 15000 {
		t.Errorf("travel = %v, want 15000", d.Amounts[AspectTravel])
	}
	if d.TotalCents != 23000 {
		t.Errorf("total = %v, want 23000", d.TotalCents)
	}

	// project fees can never be user-set
	d.SetAmount(prj, AspectProjectFees, "1.00")
	if d.Amounts[AspectProjectFees] != 8000 {
		t.Errorf("project fees must stay derived, got %v", d.Amounts[AspectProjectFees])
	}

	// unselected aspects are ignored
	d.SetAmount(prj, AspectVisaFees, "10.00")
	if _, ok := d.Amounts[AspectVisaFees]; ok {
		t.Error("setting an amount must not select the aspect")
	}
}

func TestDraft_SetDates_recomputesProjectFees(t *testing.T) {
	prj := project.Project{DailyFeeCents: 2000}

	d := Draft{Amounts: make(map[Aspect]int64)}
	d.ToggleAspect(prj, AspectProjectFees, true)
	if d.Amounts[AspectProjectFees] != 0 {
		t.Errorf("project fees without dates = %v, want 0", d.Amounts[AspectProjectFees])
	}

	start := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	d.SetDates(prj, start, start.AddDate(0, 0, 10))
	if d.Amounts[AspectProjectFees] != 20000 {
		t.Errorf("project fees = %v, want 20000", d.Amounts[AspectProjectFees])
	}
	if d.TotalCents != 20000 {
		t.Errorf("total = %v, want 20000", d.TotalCents)
	}

	// shrinking the window shrinks the derived fee
	d.SetDates(prj, start, start.AddDate(0, 0, 2))
	if d.Amounts[AspectProjectFees] != 4000 {
		t.Errorf("project fees after shrink = %v, want 4000", d.Amounts[AspectProjectFees])
	}
}

func TestDraft_SponsorshipItems(t *testing.T) {
	d := Draft{Amounts: map[Aspect]int64{
		AspectVisaFees: 5000,
		AspectTravel:   10000,
	}}

	want := []SponsorshipItem{
		{Aspect: AspectTravel, AmountCents: 10000},
		{Aspect: AspectVisaFees, AmountCents: 5000},
	}
	if got := d.SponsorshipItems(); !reflect.DeepEqual(got, want) {
		t.Errorf("SponsorshipItems() = %v, want %v", got, want)
	}
}
