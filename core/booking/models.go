package booking

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/bunjo05/volunteer-faster/core"
)

// Aspect is one category of trip cost a volunteer may request sponsorship for.
type Aspect string

const (
	AspectTravel         Aspect = "travel"
	AspectAccommodation  Aspect = "accommodation"
	AspectMeals          Aspect = "meals"
	AspectLivingExpenses Aspect = "living_expenses"
	AspectVisaFees       Aspect = "visa_fees"
	AspectProjectFees    Aspect = "project_fees"
)

var (
	AllAspects = []Aspect{
		AspectTravel,
		AspectAccommodation,
		AspectMeals,
		AspectLivingExpenses,
		AspectVisaFees,
		AspectProjectFees,
	}

	aspectLabels = map[Aspect]string{
		AspectTravel:         "Travel",
		AspectAccommodation:  "Accommodation",
		AspectMeals:          "Meals",
		AspectLivingExpenses: "Living expenses",
		AspectVisaFees:       "Visa fees",
		AspectProjectFees:    "Project fees",
	}

	// inclusionAspects maps project inclusion labels to the aspect they make
	// non-offerable: a host already covering these costs cannot be asked to
	// sponsor them.
	inclusionAspects = map[string]Aspect{
		"Accommodation": AspectAccommodation,
		"Meals":         AspectMeals,
	}
)

func (a Aspect) Valid() bool {
	_, ok := aspectLabels[a]
	return ok
}

func (a Aspect) Label() string {
	return aspectLabels[a]
}

// Step is the wizard position of an anonymous booking draft.
// Authenticated drafts are created directly at StepReady.
type Step string

const (
	StepCollectEmail Step = "collect_email"
	StepAwaitCode    Step = "await_code"
	StepProfile      Step = "profile"
	StepContact      Step = "contact"
	StepBooking      Step = "booking"
	StepReady        Step = "ready"
)

var stepOrder = []Step{StepCollectEmail, StepAwaitCode, StepProfile, StepContact, StepBooking, StepReady}

// Prev returns the preceding wizard step; the first step returns itself.
func (s Step) Prev() Step {
	for i, st := range stepOrder {
		if st == s && i > 0 {
			return stepOrder[i-1]
		}
	}
	return s
}

// ApplicantProfile holds the anonymous path's registration fields. Credential
// fields live only in the session-scoped draft and are dropped on submission.
type ApplicantProfile struct {
	Name            string `json:"name,omitempty"`
	Gender          string `json:"gender,omitempty"`
	BirthDate       string `json:"birth_date,omitempty"`
	Country         string `json:"country,omitempty"`
	Address         string `json:"address,omitempty"`
	City            string `json:"city,omitempty"`
	PostalCode      string `json:"postal_code,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Password        string `json:"password,omitempty"`
	PasswordConfirm string `json:"password_confirm,omitempty"`
}

// SponsorshipNarrative is the free-text and consent part of a funding request.
type SponsorshipNarrative struct {
	SelfIntro  string `json:"self_intro,omitempty"`
	Skills     string `json:"skills,omitempty"`
	Impact     string `json:"impact,omitempty"`
	Commitment string `json:"commitment,omitempty"`
	Agreement  bool   `json:"agreement"`
	Privacy    bool   `json:"privacy"`
}

// Draft is the in-progress, unsubmitted booking/sponsorship state. It is
// exclusively owned by one browsing session and carries no server-side
// identity until submission. Amounts holds integer cents keyed by selected
// aspect; presence in the map means the aspect is selected, and the
// project-fees entry is always re-derived from the dates rather than trusted.
type Draft struct {
	Key           string `json:"key"`
	ProjectID     string `json:"project_id"`
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"user_id,omitempty"`
	Step          Step   `json:"step"`

	Email         string `json:"email,omitempty"`
	EmailExists   bool   `json:"email_exists"`
	EmailVerified bool   `json:"email_verified"`

	Profile ApplicantProfile `json:"profile"`

	StartDate      time.Time `json:"start_date,omitempty"`
	EndDate        time.Time `json:"end_date,omitempty"`
	TravellerCount int       `json:"traveller_count"`
	Message        string    `json:"message,omitempty"`

	SponsorshipRequested bool                 `json:"sponsorship_requested"`
	Amounts              map[Aspect]int64     `json:"amounts"`
	TotalCents           int64                `json:"total_cents"`
	Narrative            SponsorshipNarrative `json:"narrative"`

	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// BookingEditable reports whether booking and funding fields may be mutated
// at the draft's current step.
func (d *Draft) BookingEditable() bool {
	return d.Step == StepBooking || d.Step == StepReady
}

// Booking is a persisted trip booking.
type Booking struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	UserID         string    `json:"user_id"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	DurationDays   int       `json:"duration_days"`
	TravellerCount int       `json:"traveller_count"`
	Message        string    `json:"message,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"` // UTC
	UpdatedAt      time.Time `json:"updated_at"` // UTC

	Sponsorship *Sponsorship `json:"sponsorship,omitempty"`
}

const StatusPending = "pending"

// Sponsorship is the funding request attached to a booking.
type Sponsorship struct {
	ID         string            `json:"id"`
	BookingID  string            `json:"booking_id"`
	Items      []SponsorshipItem `json:"items"`
	TotalCents int64             `json:"total_cents"`
	SelfIntro  string            `json:"self_intro,omitempty"`
	Skills     string            `json:"skills,omitempty"`
	Impact     string            `json:"impact,omitempty"`
	Commitment string            `json:"commitment,omitempty"`
	Agreement  bool              `json:"agreement"`
	Privacy    bool              `json:"privacy"`
	CreatedAt  time.Time         `json:"created_at"` // UTC
}

type SponsorshipItem struct {
	Aspect      Aspect `json:"aspect"`
	AmountCents int64  `json:"amount_cents"`
}

var (
	ErrNotFound      = errors.New("booking not found")
	ErrDraftNotFound = errors.New("booking draft not found")
)

// DraftStore persists wizard drafts keyed by their session-scoped key.
type DraftStore interface {
	LoadDraft(ctx context.Context, key string) (Draft, error)
	SaveDraft(ctx context.Context, d Draft) error
	ClearDraft(ctx context.Context, key string) error
}

// Wizard step inputs.

type EmailStepInput struct {
	Email string `json:"email" validate:"required,email"`
}

// Validate cleans the address before the email check so padded input like
// "  Jo@Test.cd " passes the way the wizard stores it.
func (in *EmailStepInput) Validate(validate *validator.Validate) error {
	in.Email = core.CleanString(in.Email, true /* lower */)
	return validate.Struct(in)
}

type CodeStepInput struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type ProfileStepInput struct {
	Name            string `json:"name" validate:"required"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	Gender          string `json:"gender" validate:"omitempty,oneof=female male other"`
	BirthDate       string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
}

type ContactStepInput struct {
	Country    string `json:"country" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone" validate:"omitempty,e164"`
}

type DatesInput struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

func (in DatesInput) ParsedDates() (time.Time, time.Time) {
	start, _ := time.Parse("2006-01-02", in.StartDate)
	end, _ := time.Parse("2006-01-02", in.EndDate)
	return start, end
}

// DetailsInput updates the free-form booking fields; nil pointers leave the
// current draft value untouched.
type DetailsInput struct {
	TravellerCount       *int                  `json:"traveller_count" validate:"omitempty,gte=1"`
	Message              *string               `json:"message"`
	SponsorshipRequested *bool                 `json:"sponsorship_requested"`
	Narrative            *SponsorshipNarrative `json:"narrative"`
}

type AspectToggleInput struct {
	Aspect   Aspect `json:"aspect" validate:"required,aspect"`
	Selected bool   `json:"selected"`
}

type AspectAmountInput struct {
	Aspect Aspect `json:"aspect" validate:"required,aspect"`
	Amount string `json:"amount"`
}

// NewBooking is the canonical direct-submission payload for authenticated
// volunteers. The wizard's anonymous path funnels into the same shape on
// submit.
type NewBooking struct {
	ProjectID            string              `json:"project_id" validate:"required"`
	StartDate            string              `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate              string              `json:"end_date" validate:"required,datetime=2006-01-02"`
	TravellerCount       int                 `json:"traveller_count" validate:"omitempty,gte=1"`
	Message              string              `json:"message"`
	SponsorshipRequested bool                `json:"sponsorship_requested"`
	Aspects              []AspectAmountInput `json:"aspects" validate:"omitempty,dive"`

	SelfIntro  string `json:"self_intro" validate:"required_if=SponsorshipRequested true"`
	Skills     string `json:"skills" validate:"required_if=SponsorshipRequested true"`
	Impact     string `json:"impact" validate:"required_if=SponsorshipRequested true"`
	Commitment string `json:"commitment" validate:"required_if=SponsorshipRequested true"`
	Agreement  bool   `json:"agreement" validate:"required_if=SponsorshipRequested true"`
	Privacy    bool   `json:"privacy" validate:"required_if=SponsorshipRequested true"`
}

func (nb *NewBooking) Validate(validate *validator.Validate) error {
	nb.Message = core.CleanString(nb.Message)
	if err := validate.Struct(nb); err != nil {
		return err
	}
	start, end := nb.ParsedDates()
	if end.Before(start) {
		return core.NewValidationError(nil, core.FieldError{Field: "end_date", Error: "end date cannot be before start date"})
	}
	return nil
}

func (nb *NewBooking) ParsedDates() (time.Time, time.Time) {
	start, _ := time.Parse("2006-01-02", nb.StartDate)
	end, _ := time.Parse("2006-01-02", nb.EndDate)
	return start, end
}
