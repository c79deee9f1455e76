package booking_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/bunjo05/volunteer-faster/core"
	"github.com/bunjo05/volunteer-faster/core/booking"
	"github.com/bunjo05/volunteer-faster/core/project"
	"github.com/bunjo05/volunteer-faster/core/user"
	emailsvc "github.com/bunjo05/volunteer-faster/services/email"
	inmemdb "github.com/bunjo05/volunteer-faster/storage/database/inmem"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

var codeRegex = regexp.MustCompile(`\d{6}`)

type testEnv struct {
	svc    *booking.Service
	usrSvc *user.Service
	prj    project.Project
	ctx    context.Context
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	conf := core.NewConfig()
	core.ParseEmailTemplates(nopLogger{})
	emailsvc.ClearSentMessages()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	booking.InitValidators(validate, translator)

	db := inmemdb.NewDB()
	mailSvc := emailsvc.NewConsoleServiceMock()
	usrSvc := user.NewService(nil, inmemdb.NewUserRepository(db), mailSvc, conf)
	prjSvc := project.NewService(inmemdb.NewProjectRepository(db))

	ctx := context.Background()
	org, err := prjSvc.CreateOrganization(ctx, project.NewOrganization{Name: "Green Steps", Country: "Kenya"})
	if err != nil {
		t.Fatalf("CreateOrganization(): %v", err)
	}
	prj, err := prjSvc.Create(ctx, project.NewProject{
		OrganizationID: org.ID,
		Name:           "Turtle Conservation",
		Country:        "Kenya",
		DailyFeeCents:  2000,
		Includes:       []string{"Accommodation"},
	})
	if err != nil {
		t.Fatalf("Create(project): %v", err)
	}

	svc := booking.NewService(
		nil,
		inmemdb.NewBookingRepository(db),
		inmemdb.NewDraftStore(db),
		prjSvc,
		usrSvc,
		mailSvc,
		validate,
		conf,
	)
	return &testEnv{svc: svc, usrSvc: usrSvc, prj: prj, ctx: ctx}
}

// lastSentCode pulls the 6-digit code out of the most recent captured email.
func lastSentCode(t *testing.T) string {
	t.Helper()
	if len(emailsvc.SentMessages) == 0 {
		t.Fatal("no email was sent")
	}
	msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
	code := codeRegex.FindString(msg.TextContent)
	if code == "" {
		t.Fatalf("no code found in email body: %q", msg.TextContent)
	}
	return code
}

func TestService_StartDraft(t *testing.T) {
	env := setup(t)

	d, err := env.svc.StartDraft(env.ctx, env.prj.ID, nil)
	if err != nil {
		t.Fatalf("StartDraft(): %v", err)
	}
	if d.Key == "" {
		t.Error("draft key must be set")
	}
	if d.Step != booking.StepCollectEmail {
		t.Errorf("step = %v, want %v", d.Step, booking.StepCollectEmail)
	}
	if d.TravellerCount != 1 {
		t.Errorf("traveller count = %v, want 1", d.TravellerCount)
	}

	// authenticated volunteers skip the identity gate
	usr, err := env.usrSvc.Create(env.ctx, user.NewUser{
		Name: "Jo Doe", Email: "jo@test.cd", Password: "Str0ng&Pass", PasswordConfirm: "Str0ng&Pass",
	})
	if err != nil {
		t.Fatalf("Create(user): %v", err)
	}
	d, err = env.svc.StartDraft(env.ctx, env.prj.ID, &usr)
	if err != nil {
		t.Fatalf("StartDraft(auth): %v", err)
	}
	if d.Step != booking.StepReady {
		t.Errorf("auth step = %v, want %v", d.Step, booking.StepReady)
	}
	if !d.Authenticated || d.UserID != usr.ID {
		t.Error("draft must be bound to the authenticated user")
	}

	// unknown project
	if _, err = env.svc.StartDraft(env.ctx, "nope", nil); errors.Cause(err) != project.ErrNotFound {
		t.Errorf("StartDraft(unknown project) error = %v, want %v", err, project.ErrNotFound)
	}
}

func TestService_SubmitEmail_knownEmailHalts(t *testing.T) {
	env := setup(t)

	_, err := env.usrSvc.Create(env.ctx, user.NewUser{
		Name: "Jo Doe", Email: "jo@test.cd", Password: "Str0ng&Pass", PasswordConfirm: "Str0ng&Pass",
	})
	if err != nil {
		t.Fatalf("Create(user): %v", err)
	}

	d, _ := env.svc.StartDraft(env.ctx, env.prj.ID, nil)
	d, err = env.svc.SubmitEmail(env.ctx, d.Key, booking.EmailStepInput{Email: "  Jo@Test.cd "})
	if err != booking.ErrEmailTaken {
		t.Fatalf("SubmitEmail() error = %v, want %v", err, booking.ErrEmailTaken)
	}
	if !d.EmailExists {
		t.Error("draft must be flagged email_exists")
	}
	if d.Step != booking.StepCollectEmail {
		t.Errorf("step = %v, want %v (wizard halted)", d.Step, booking.StepCollectEmail)
	}
	if len(emailsvc.SentMessages) != 0 {
		t.Error("no verification code should be sent for a known email")
	}

	// retrying with a fresh email recovers
	d, err = env.svc.SubmitEmail(env.ctx, d.Key, booking.EmailStepInput{Email: "new@test.cd"})
	if err != nil {
		t.Fatalf("SubmitEmail(retry): %v", err)
	}
	if d.EmailExists || d.Step != booking.StepAwaitCode {
		t.Errorf("retry should advance to %v, got %v (exists=%v)", booking.StepAwaitCode, d.Step, d.EmailExists)
	}
}

func TestService_VerifyEmail(t *testing.T) {
	env := setup(t)

	d, _ := env.svc.StartDraft(env.ctx, env.prj.ID, nil)
	d, err := env.svc.SubmitEmail(env.ctx, d.Key, booking.EmailStepInput{Email: "jo@test.cd"})
	if err != nil {
		t.Fatalf("SubmitEmail(): %v", err)
	}
	code := lastSentCode(t)

	// wrong code leaves the draft in place
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	d, err = env.svc.VerifyEmail(env.ctx, d.Key, booking.CodeStepInput{Code: wrong})
	if errors.Cause(err) != user.ErrCodeMismatch {
		t.Fatalf("VerifyEmail(wrong) error = %v, want %v", err, user.ErrCodeMismatch)
	}
	if d.Step != booking.StepAwaitCode {
		t.Errorf("step = %v, want %v", d.Step, booking.StepAwaitCode)
	}

	// right code advances to the profile step
	d, err = env.svc.VerifyEmail(env.ctx, d.Key, booking.CodeStepInput{Code: code})
	if err != nil {
		t.Fatalf("VerifyEmail(): %v", err)
	}
	if !d.EmailVerified || d.Step != booking.StepProfile {
		t.Errorf("verify should advance to %v, got %v (verified=%v)", booking.StepProfile, d.Step, d.EmailVerified)
	}

	// the step has moved on; re-verifying is not allowed
	if _, err = env.svc.VerifyEmail(env.ctx, d.Key, booking.CodeStepInput{Code: code}); err != booking.ErrInvalidStep {
		t.Errorf("VerifyEmail(again) error = %v, want %v", err, booking.ErrInvalidStep)
	}
}

func TestService_VerifyEmail_attemptBudget(t *testing.T) {
	env := setup(t)

	d, _ := env.svc.StartDraft(env.ctx, env.prj.ID, nil)
	d, err := env.svc.SubmitEmail(env.ctx, d.Key, booking.EmailStepInput{Email: "jo@test.cd"})
	if err != nil {
		t.Fatalf("SubmitEmail(): %v", err)
	}
	code := lastSentCode(t)
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	for i := 0; i < 4; i++ {
		if _, err = env.svc.VerifyEmail(env.ctx, d.Key, booking.CodeStepInput{Code: wrong}); errors.Cause(err) != user.ErrCodeMismatch {
			t.Fatalf("attempt %d error = %v, want %v", i+1, err, user.ErrCodeMismatch)
		}
	}
	// fifth failure exhausts the budget
	if _, err = env.svc.VerifyEmail(env.ctx, d.Key, booking.CodeStepInput{Code: wrong}); errors.Cause(err) != user.ErrTooManyAttempts {
		t.Fatalf("attempt 5 error = %v, want %v", err, user.ErrTooManyAttempts)
	}
	// even the right code is now rejected
	if _, err = env.svc.VerifyEmail(env.ctx, d.Key, booking.CodeStepInput{Code: code}); errors.Cause(err) != user.ErrTooManyAttempts {
		t.Fatalf("post-budget error = %v, want %v", err, user.ErrTooManyAttempts)
	}

	// a fresh code resets the budget
	d, err = env.svc.SubmitEmail(env.ctx, d.Key, booking.EmailStepInput{Email: "jo@test.cd"})
	if err != nil {
		t.Fatalf("SubmitEmail(fresh): %v", err)
	}
	if _, err = env.svc.VerifyEmail(env.ctx, d.Key, booking.CodeStepInput{Code: lastSentCode(t)}); err != nil {
		t.Fatalf("VerifyEmail(fresh): %v", err)
	}
}

func TestService_stepGuards(t *testing.T) {
	env := setup(t)

	d, _ := env.svc.StartDraft(env.ctx, env.prj.ID, nil)

	if _, err := env.svc.VerifyEmail(env.ctx, d.Key, booking.CodeStepInput{Code: "123456"}); err != booking.ErrInvalidStep {
		t.Errorf("VerifyEmail at %v error = %v, want %v", d.Step, err, booking.ErrInvalidStep)
	}
	if _, err := env.svc.SubmitProfile(env.ctx, d.Key, booking.ProfileStepInput{Name: "Jo"}); err != booking.ErrInvalidStep {
		t.Errorf("SubmitProfile at %v error = %v, want %v", d.Step, err, booking.ErrInvalidStep)
	}
	if _, err := env.svc.SubmitContact(env.ctx, d.Key, booking.ContactStepInput{Country: "DE"}); err != booking.ErrInvalidStep {
		t.Errorf("SubmitContact at %v error = %v, want %v", d.Step, err, booking.ErrInvalidStep)
	}
	if _, err := env.svc.UpdateDates(env.ctx, d.Key, booking.DatesInput{StartDate: "2026-06-01", EndDate: "2026-06-05"}); err != booking.ErrInvalidStep {
		t.Errorf("UpdateDates at %v error = %v, want %v", d.Step, err, booking.ErrInvalidStep)
	}
	if _, err := env.svc.ToggleAspect(env.ctx, d.Key, booking.AspectToggleInput{Aspect: booking.AspectTravel, Selected: true}); err != booking.ErrInvalidStep {
		t.Errorf("ToggleAspect at %v error = %v, want %v", d.Step, err, booking.ErrInvalidStep)
	}
	if _, err := env.svc.PrevStep(env.ctx, d.Key); err != booking.ErrInvalidStep {
		t.Errorf("PrevStep at first step error = %v, want %v", err, booking.ErrInvalidStep)
	}
	if _, err := env.svc.Submit(env.ctx, d.Key); err == nil {
		t.Error("Submit at first step should fail")
	}

	// unknown draft
	if _, err := env.svc.GetDraft(env.ctx, "nope"); errors.Cause(err) != booking.ErrDraftNotFound {
		t.Errorf("GetDraft(unknown) error = %v, want %v", err, booking.ErrDraftNotFound)
	}
}

func TestService_PrevStep(t *testing.T) {
	env := setup(t)

	d, _ := env.svc.StartDraft(env.ctx, env.prj.ID, nil)
	d, err := env.svc.SubmitEmail(env.ctx, d.Key, booking.EmailStepInput{Email: "jo@test.cd"})
	if err != nil {
		t.Fatalf("SubmitEmail(): %v", err)
	}

	d, err = env.svc.PrevStep(env.ctx, d.Key)
	if err != nil {
		t.Fatalf("PrevStep(): %v", err)
	}
	if d.Step != booking.StepCollectEmail {
		t.Errorf("step = %v, want %v", d.Step, booking.StepCollectEmail)
	}
	// collected data survives the back navigation
	if d.Email != "jo@test.cd" {
		t.Errorf("email should be kept, got %q", d.Email)
	}

	// authenticated drafts cannot navigate back
	usr, err := env.usrSvc.Create(env.ctx, user.NewUser{
		Name: "Jo Doe", Email: "other@test.cd", Password: "Str0ng&Pass", PasswordConfirm: "Str0ng&Pass",
	})
	if err != nil {
		t.Fatalf("Create(user): %v", err)
	}
	ad, _ := env.svc.StartDraft(env.ctx, env.prj.ID, &usr)
	if _, err = env.svc.PrevStep(env.ctx, ad.Key); err != booking.ErrInvalidStep {
		t.Errorf("PrevStep(auth) error = %v, want %v", err, booking.ErrInvalidStep)
	}
}

func TestService_AttachUser(t *testing.T) {
	env := setup(t)

	usr, err := env.usrSvc.Create(env.ctx, user.NewUser{
		Name: "Jo Doe", Email: "jo@test.cd", Password: "Str0ng&Pass", PasswordConfirm: "Str0ng&Pass",
	})
	if err != nil {
		t.Fatalf("Create(user): %v", err)
	}

	d, _ := env.svc.StartDraft(env.ctx, env.prj.ID, nil)
	d, err = env.svc.SubmitEmail(env.ctx, d.Key, booking.EmailStepInput{Email: usr.Email})
	if err != booking.ErrEmailTaken {
		t.Fatalf("SubmitEmail() error = %v, want %v", err, booking.ErrEmailTaken)
	}

	d, err = env.svc.AttachUser(env.ctx, d.Key, usr)
	if err != nil {
		t.Fatalf("AttachUser(): %v", err)
	}
	if !d.Authenticated || d.UserID != usr.ID || d.Step != booking.StepReady {
		t.Errorf("draft should resume authenticated at %v, got %+v", booking.StepReady, d)
	}
	if d.EmailExists {
		t.Error("email_exists flag should be cleared")
	}
	if d.Profile.Password != "" || d.Profile.PasswordConfirm != "" {
		t.Error("collected credentials must be dropped")
	}
}

func TestService_anonymousWizard(t *testing.T) {
	env := setup(t)

	d, err := env.svc.StartDraft(env.ctx, env.prj.ID, nil)
	if err != nil {
		t.Fatalf("StartDraft(): %v", err)
	}
	key := d.Key

	// identity gate
	if _, err = env.svc.SubmitEmail(env.ctx, key, booking.EmailStepInput{Email: "jo@test.cd"}); err != nil {
		t.Fatalf("SubmitEmail(): %v", err)
	}
	if _, err = env.svc.VerifyEmail(env.ctx, key, booking.CodeStepInput{Code: lastSentCode(t)}); err != nil {
		t.Fatalf("VerifyEmail(): %v", err)
	}
	emailsvc.ClearSentMessages()

	// profile & contact
	if _, err = env.svc.SubmitProfile(env.ctx, key, booking.ProfileStepInput{
		Name: "Jo Doe", Password: "Str0ng&Pass", PasswordConfirm: "Str0ng&Pass", Gender: "female", BirthDate: "1995-04-01",
	}); err != nil {
		t.Fatalf("SubmitProfile(): %v", err)
	}
	if _, err = env.svc.SubmitContact(env.ctx, key, booking.ContactStepInput{
		Country: "Germany", Address: "Hauptstr. 1", City: "Berlin", Phone: "+4915112345678",
	}); err != nil {
		t.Fatalf("SubmitContact(): %v", err)
	}

	// submitting before dates are set fails
	if _, err = env.svc.Submit(env.ctx, key); err == nil {
		t.Fatal("Submit() without dates should fail")
	}

	// booking details
	if _, err = env.svc.UpdateDates(env.ctx, key, booking.DatesInput{StartDate: "2026-06-01", EndDate: "2026-06-05"}); err != nil {
		t.Fatalf("UpdateDates(): %v", err)
	}
	// end before start is rejected whole
	if _, err = env.svc.UpdateDates(env.ctx, key, booking.DatesInput{StartDate: "2026-06-05", EndDate: "2026-06-01"}); err == nil {
		t.Fatal("UpdateDates(end<start) should fail")
	}
	d, err = env.svc.GetDraft(env.ctx, key)
	if err != nil {
		t.Fatalf("GetDraft(): %v", err)
	}
	if got := d.StartDate.Format("2006-01-02"); got != "2026-06-01" {
		t.Errorf("rejected dates must not stick, start = %v", got)
	}

	// funding
	if _, err = env.svc.ToggleAspect(env.ctx, key, booking.AspectToggleInput{Aspect: booking.AspectTravel, Selected: true}); err != nil {
		t.Fatalf("ToggleAspect(travel): %v", err)
	}
	if _, err = env.svc.SetAspectAmount(env.ctx, key, booking.AspectAmountInput{Aspect: booking.AspectTravel, Amount: "300.00"}); err != nil {
		t.Fatalf("SetAspectAmount(): %v", err)
	}
	d, err = env.svc.ToggleAspect(env.ctx, key, booking.AspectToggleInput{Aspect: booking.AspectProjectFees, Selected: true})
	if err != nil {
		t.Fatalf("ToggleAspect(project_fees): %v", err)
	}
	// 4 days x 20.00
	if d.Amounts[booking.AspectProjectFees] != 8000 {
		t.Errorf("project fees = %v, want 8000", d.Amounts[booking.AspectProjectFees])
	}
	if d.TotalCents != 38000 {
		t.Errorf("total = %v, want 38000", d.TotalCents)
	}

	narrative := booking.SponsorshipNarrative{
		SelfIntro:  "I am Jo.",
		Skills:     "Carpentry.",
		Impact:     "Build a school.",
		Commitment: "Will report monthly.",
	}
	requested := true
	if _, err = env.svc.UpdateDetails(env.ctx, key, booking.DetailsInput{SponsorshipRequested: &requested, Narrative: &narrative}); err != nil {
		t.Fatalf("UpdateDetails(): %v", err)
	}

	// sponsorship terms must be accepted
	if _, err = env.svc.Submit(env.ctx, key); err == nil {
		t.Fatal("Submit() without accepted terms should fail")
	}
	narrative.Agreement = true
	narrative.Privacy = true
	if _, err = env.svc.UpdateDetails(env.ctx, key, booking.DetailsInput{Narrative: &narrative}); err != nil {
		t.Fatalf("UpdateDetails(terms): %v", err)
	}

	bkg, err := env.svc.Submit(env.ctx, key)
	if err != nil {
		t.Fatalf("Submit(): %v", err)
	}
	if bkg.ID == "" || bkg.Status != booking.StatusPending {
		t.Errorf("booking not persisted as pending: %+v", bkg)
	}
	if bkg.DurationDays != 4 {
		t.Errorf("duration = %v, want 4", bkg.DurationDays)
	}
	if bkg.Sponsorship == nil {
		t.Fatal("sponsorship missing")
	}
	if bkg.Sponsorship.TotalCents != 38000 {
		t.Errorf("sponsorship total = %v, want 38000", bkg.Sponsorship.TotalCents)
	}

	// the volunteer account was registered verified
	usr, err := env.usrSvc.GetByEmail(env.ctx, "jo@test.cd")
	if err != nil {
		t.Fatalf("GetByEmail(): %v", err)
	}
	if !usr.EmailVerified {
		t.Error("registered account should be email-verified")
	}
	if bkg.UserID != usr.ID {
		t.Error("booking must belong to the registered account")
	}

	// draft is gone
	if _, err = env.svc.GetDraft(env.ctx, key); errors.Cause(err) != booking.ErrDraftNotFound {
		t.Errorf("GetDraft(after submit) error = %v, want %v", err, booking.ErrDraftNotFound)
	}

	// confirmation email went out
	if len(emailsvc.SentMessages) != 1 {
		t.Fatalf("sent messages = %d, want 1", len(emailsvc.SentMessages))
	}
	if got := emailsvc.SentMessages[0].Subject; got != "Your booking request was received" {
		t.Errorf("subject = %q", got)
	}
}

func TestService_Create_authenticated(t *testing.T) {
	env := setup(t)

	usr, err := env.usrSvc.Create(env.ctx, user.NewUser{
		Name: "Jo Doe", Email: "jo@test.cd", Password: "Str0ng&Pass", PasswordConfirm: "Str0ng&Pass",
	})
	if err != nil {
		t.Fatalf("Create(user): %v", err)
	}

	nb := booking.NewBooking{
		ProjectID:            env.prj.ID,
		StartDate:            "2026-06-01",
		EndDate:              "2026-06-05",
		TravellerCount:       2,
		SponsorshipRequested: true,
		Aspects: []booking.AspectAmountInput{
			{Aspect: booking.AspectTravel, Amount: "100.00"},
			{Aspect: booking.AspectAccommodation, Amount: "50.00"}, // covered by the project, must be dropped
			{Aspect: booking.AspectProjectFees, Amount: "1.00"},    // always re-derived
		},
		SelfIntro: "Hi.", Skills: "Farming.", Impact: "Trees.", Commitment: "Weekly.",
		Agreement: true, Privacy: true,
	}
	bkg, err := env.svc.Create(env.ctx, usr, nb)
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}
	if bkg.UserID != usr.ID || bkg.TravellerCount != 2 {
		t.Errorf("booking = %+v", bkg)
	}
	if bkg.Sponsorship == nil {
		t.Fatal("sponsorship missing")
	}
	items := map[booking.Aspect]int64{}
	for _, it := range bkg.Sponsorship.Items {
		items[it.Aspect] = it.AmountCents
	}
	if _, ok := items[booking.AspectAccommodation]; ok {
		t.Error("covered aspect must be dropped")
	}
	if items[booking.AspectTravel] != 10000 {
		t.Errorf("travel = %v, want 10000", items[booking.AspectTravel])
	}
	if items[booking.AspectProjectFees] != 8000 {
		t.Errorf("project fees = %v, want 8000 (4 days x 2000)", items[booking.AspectProjectFees])
	}
	if bkg.Sponsorship.TotalCents != 18000 {
		t.Errorf("total = %v, want 18000", bkg.Sponsorship.TotalCents)
	}

	// the booking can be read back with its sponsorship
	got, err := env.svc.GetByID(env.ctx, bkg.ID)
	if err != nil {
		t.Fatalf("GetByID(): %v", err)
	}
	if got.Sponsorship == nil || got.Sponsorship.TotalCents != 18000 {
		t.Errorf("read back = %+v", got.Sponsorship)
	}

	mine, err := env.svc.QueryByUser(env.ctx, usr.ID, nil)
	if err != nil {
		t.Fatalf("QueryByUser(): %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("bookings = %d, want 1", len(mine))
	}
}

func TestNewBooking_Validate(t *testing.T) {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	booking.InitValidators(validate, translator)

	nb := booking.NewBooking{ProjectID: "p1", StartDate: "2026-06-05", EndDate: "2026-06-01"}
	err := nb.Validate(validate)
	if err == nil {
		t.Fatal("end before start should fail validation")
	}
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error type = %T, want *core.ValidationError", err)
	}

	nb = booking.NewBooking{ProjectID: "p1", StartDate: "2026-06-01", EndDate: "2026-06-05"}
	if err = nb.Validate(validate); err != nil {
		t.Errorf("Validate(): %v", err)
	}

	// a sponsorship request demands the narrative
	nb.SponsorshipRequested = true
	if err = nb.Validate(validate); err == nil {
		t.Error("sponsorship without narrative should fail validation")
	}

	nb.SelfIntro, nb.Skills, nb.Impact, nb.Commitment = "a", "b", "c", "d"
	nb.Agreement, nb.Privacy = true, true
	if err = nb.Validate(validate); err != nil {
		t.Errorf("Validate(full): %v", err)
	}

	nb.Aspects = []booking.AspectAmountInput{{Aspect: booking.Aspect("lol")}}
	if err = nb.Validate(validate); err == nil {
		t.Error("invalid aspect should fail validation")
	}
}

func TestEmailStepInput_Validate(t *testing.T) {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	// padded mixed-case input is cleaned before the email check
	in := booking.EmailStepInput{Email: "  Jo@Test.cd "}
	if err := in.Validate(validate); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if in.Email != "jo@test.cd" {
		t.Errorf("email = %q, want %q", in.Email, "jo@test.cd")
	}

	in = booking.EmailStepInput{Email: "lol"}
	if err := in.Validate(validate); err == nil {
		t.Error("malformed address should fail validation")
	}

	in = booking.EmailStepInput{}
	if err := in.Validate(validate); err == nil {
		t.Error("missing address should fail validation")
	}
}
