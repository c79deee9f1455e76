package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/bunjo05/volunteer-faster/core"
	"github.com/bunjo05/volunteer-faster/core/project"
	"github.com/bunjo05/volunteer-faster/core/user"
)

var (
	// ErrEmailTaken halts the anonymous wizard at the identity gate: the
	// visitor already has an account and must log in instead.
	ErrEmailTaken = errors.New("an account with this email already exists")

	// ErrInvalidStep rejects an operation the draft's current step does not allow.
	ErrInvalidStep = errors.New("operation not allowed at the current step")
)

// StartDraft opens a wizard draft for a project. An authenticated volunteer
// skips the identity gate entirely and lands on the ready step; everyone
// else starts at email collection.
func (svc *Service) StartDraft(ctx context.Context, projectID string, authUsr *user.User) (Draft, error) {
	prj, err := svc.activeProject(ctx, projectID)
	if err != nil {
		return Draft{}, err
	}

	now := time.Now().UTC()
	d := Draft{
		Key:            uuid.NewString(),
		ProjectID:      prj.ID,
		Step:           StepCollectEmail,
		TravellerCount: 1,
		Amounts:        make(map[Aspect]int64),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if authUsr != nil {
		d.Authenticated = true
		d.UserID = authUsr.ID
		d.Email = authUsr.Email
		d.EmailVerified = true
		d.Step = StepReady
	}

	if err := svc.saveDraft(ctx, &d); err != nil {
		return Draft{}, err
	}
	return d, nil
}

func (svc *Service) GetDraft(ctx context.Context, key string) (Draft, error) {
	return svc.drafts.LoadDraft(ctx, key)
}

// SubmitEmail runs the identity gate. A known email halts the wizard and
// flags the draft so the frontend can offer the login transition; an unknown
// one gets a verification code and advances to the code step.
func (svc *Service) SubmitEmail(ctx context.Context, key string, in EmailStepInput) (Draft, error) {
	d, err := svc.drafts.LoadDraft(ctx, key)
	if err != nil {
		return Draft{}, err
	}
	if d.Authenticated || (d.Step != StepCollectEmail && d.Step != StepAwaitCode) {
		return Draft{}, ErrInvalidStep
	}

	email := core.CleanString(in.Email, true /* lower */)
	exists, err := svc.usrSvc.EmailExists(ctx, email)
	if err != nil {
		return Draft{}, err
	}

	d.Email = email
	if exists {
		d.EmailExists = true
		d.Step = StepCollectEmail
		if err := svc.saveDraft(ctx, &d); err != nil {
			return Draft{}, err
		}
		return d, ErrEmailTaken
	}

	if err := svc.usrSvc.SendVerificationCode(ctx, email, user.PurposeEmailVerify); err != nil {
		return Draft{}, err
	}
	d.EmailExists = false
	d.Step = StepAwaitCode
	if err := svc.saveDraft(ctx, &d); err != nil {
		return Draft{}, err
	}
	return d, nil
}

// VerifyEmail checks the emailed code. Mismatches leave the draft in place
// so the visitor can retry within the code's attempt budget.
func (svc *Service) VerifyEmail(ctx context.Context, key string, in CodeStepInput) (Draft, error) {
	d, err := svc.drafts.LoadDraft(ctx, key)
	if err != nil {
		return Draft{}, err
	}
	if d.Authenticated || d.Step != StepAwaitCode {
		return Draft{}, ErrInvalidStep
	}

	if err := svc.usrSvc.VerifyCode(ctx, d.Email, in.Code, user.PurposeEmailVerify); err != nil {
		return d, err
	}

	d.EmailVerified = true
	d.Step = StepProfile
	if err := svc.saveDraft(ctx, &d); err != nil {
		return Draft{}, err
	}
	return d, nil
}

// AttachUser resumes a halted draft after the visitor logged in through the
// side channel. Collected credentials are dropped and the draft jumps to the
// authenticated ready step.
func (svc *Service) AttachUser(ctx context.Context, key string, usr user.User) (Draft, error) {
	d, err := svc.drafts.LoadDraft(ctx, key)
	if err != nil {
		return Draft{}, err
	}

	d.Authenticated = true
	d.UserID = usr.ID
	d.Email = usr.Email
	d.EmailExists = false
	d.EmailVerified = true
	d.Profile = ApplicantProfile{}
	d.Step = StepReady
	if err := svc.saveDraft(ctx, &d); err != nil {
		return Draft{}, err
	}
	return d, nil
}

func (svc *Service) SubmitProfile(ctx context.Context, key string, in ProfileStepInput) (Draft, error) {
	d, err := svc.drafts.LoadDraft(ctx, key)
	if err != nil {
		return Draft{}, err
	}
	if d.Authenticated || d.Step != StepProfile {
		return Draft{}, ErrInvalidStep
	}

	d.Profile.Name = core.CleanString(in.Name)
	d.Profile.Gender = in.Gender
	d.Profile.BirthDate = in.BirthDate
	d.Profile.Password = in.Password
	d.Profile.PasswordConfirm = in.PasswordConfirm
	d.Step = StepContact
	if err := svc.saveDraft(ctx, &d); err != nil {
		return Draft{}, err
	}
	return d, nil
}

func (svc *Service) SubmitContact(ctx context.Context, key string, in ContactStepInput) (Draft, error) {
	d, err := svc.drafts.LoadDraft(ctx, key)
	if err != nil {
		return Draft{}, err
	}
	if d.Authenticated || d.Step != StepContact {
		return Draft{}, ErrInvalidStep
	}

	d.Profile.Country = core.CleanString(in.Country)
	d.Profile.Address = core.CleanString(in.Address)
	d.Profile.City = core.CleanString(in.City)
	d.Profile.PostalCode = core.CleanString(in.PostalCode)
	d.Profile.Phone = core.CleanString(in.Phone)
	d.Step = StepBooking
	if err := svc.saveDraft(ctx, &d); err != nil {
		return Draft{}, err
	}
	return d, nil
}

// UpdateDates sets the trip window and recomputes the derived duration and
// project-fees amount. An end date before the start date is rejected whole;
// the draft keeps its previous dates.
func (svc *Service) UpdateDates(ctx context.Context, key string, in DatesInput) (Draft, error) {
	d, prj, err := svc.editableDraft(ctx, key)
	if err != nil {
		return Draft{}, err
	}

	start, end := in.ParsedDates()
	if end.Before(start) {
		return Draft{}, core.NewValidationError(nil, core.FieldError{Field: "end_date", Error: "end date cannot be before start date"})
	}

	d.SetDates(prj, start, end)
	if err := svc.saveDraft(ctx, &d); err != nil {
		return Draft{}, err
	}
	return d, nil
}

func (svc *Service) UpdateDetails(ctx context.Context, key string, in DetailsInput) (Draft, error) {
	d, _, err := svc.editableDraft(ctx, key)
	if err != nil {
		return Draft{}, err
	}

	if in.TravellerCount != nil {
		d.TravellerCount = *in.TravellerCount
	}
	if in.Message != nil {
		d.Message = core.CleanString(*in.Message)
	}
	if in.SponsorshipRequested != nil {
		d.SponsorshipRequested = *in.SponsorshipRequested
	}
	if in.Narrative != nil {
		d.Narrative = *in.Narrative
	}
	if err := svc.saveDraft(ctx, &d); err != nil {
		return Draft{}, err
	}
	return d, nil
}

func (svc *Service) ToggleAspect(ctx context.Context, key string, in AspectToggleInput) (Draft, error) {
	d, prj, err := svc.editableDraft(ctx, key)
	if err != nil {
		return Draft{}, err
	}

	d.ToggleAspect(prj, in.Aspect, in.Selected)
	if err := svc.saveDraft(ctx, &d); err != nil {
		return Draft{}, err
	}
	return d, nil
}

func (svc *Service) SetAspectAmount(ctx context.Context, key string, in AspectAmountInput) (Draft, error) {
	d, prj, err := svc.editableDraft(ctx, key)
	if err != nil {
		return Draft{}, err
	}

	d.SetAmount(prj, in.Aspect, in.Amount)
	if err := svc.saveDraft(ctx, &d); err != nil {
		return Draft{}, err
	}
	return d, nil
}

// PrevStep moves the wizard backward one step. Collected data is kept so
// going forward again restores it.
func (svc *Service) PrevStep(ctx context.Context, key string) (Draft, error) {
	d, err := svc.drafts.LoadDraft(ctx, key)
	if err != nil {
		return Draft{}, err
	}
	if d.Authenticated || d.Step == StepCollectEmail {
		return Draft{}, ErrInvalidStep
	}

	d.Step = d.Step.Prev()
	if err := svc.saveDraft(ctx, &d); err != nil {
		return Draft{}, err
	}
	return d, nil
}

// Submit finalizes the draft. The authenticated path books directly; the
// anonymous path registers the verified account and books in one
// transaction, so a failed booking never leaves an orphan account behind.
// The draft is cleared on success.
func (svc *Service) Submit(ctx context.Context, key string) (Booking, error) {
	d, err := svc.drafts.LoadDraft(ctx, key)
	if err != nil {
		return Booking{}, err
	}

	prj, err := svc.activeProject(ctx, d.ProjectID)
	if err != nil {
		return Booking{}, err
	}

	if d.StartDate.IsZero() || d.EndDate.IsZero() {
		return Booking{}, core.NewValidationError(nil, core.FieldError{Field: "start_date", Error: "booking dates are required"})
	}
	if d.SponsorshipRequested && (!d.Narrative.Agreement || !d.Narrative.Privacy) {
		return Booking{}, core.NewValidationError(nil, core.FieldError{Field: "agreement", Error: "sponsorship terms must be accepted"})
	}

	var bkg Booking
	switch {
	case d.Authenticated:
		if d.Step != StepReady {
			return Booking{}, ErrInvalidStep
		}
		bkg, err = svc.submitAuthenticated(ctx, d, prj)
	default:
		if d.Step != StepBooking && d.Step != StepReady {
			return Booking{}, ErrInvalidStep
		}
		if !d.EmailVerified {
			return Booking{}, ErrInvalidStep
		}
		bkg, err = svc.submitAnonymous(ctx, d, prj)
	}
	if err != nil {
		return Booking{}, err
	}

	if err := svc.drafts.ClearDraft(ctx, key); err != nil {
		return Booking{}, errors.Wrap(err, "clearing draft")
	}
	return bkg, nil
}

func (svc *Service) submitAuthenticated(ctx context.Context, d Draft, prj project.Project) (Booking, error) {
	usr, err := svc.usrSvc.GetByID(ctx, d.UserID)
	if err != nil {
		return Booking{}, err
	}

	bkg := buildBooking(prj, usr.ID, d.StartDate, d.EndDate, d.TravellerCount, d.Message)
	var sp *Sponsorship
	if d.SponsorshipRequested {
		sp = draftSponsorship(d)
	}

	bkg, err = svc.persist(ctx, bkg, sp)
	if err != nil {
		return Booking{}, err
	}
	svc.sendConfirmation(usr, prj, bkg)
	return bkg, nil
}

func (svc *Service) submitAnonymous(ctx context.Context, d Draft, prj project.Project) (Booking, error) {
	nu := user.NewUser{
		Name:            d.Profile.Name,
		Email:           d.Email,
		Password:        d.Profile.Password,
		PasswordConfirm: d.Profile.PasswordConfirm,
		Gender:          d.Profile.Gender,
		BirthDate:       d.Profile.BirthDate,
		Country:         d.Profile.Country,
		Address:         d.Profile.Address,
		City:            d.Profile.City,
		PostalCode:      d.Profile.PostalCode,
		Phone:           d.Profile.Phone,
		Roles:           []string{user.RoleVolunteer},
	}
	if err := nu.Validate(svc.validate, svc.usrSvc); err != nil {
		return Booking{}, err
	}

	bkg := buildBooking(prj, "", d.StartDate, d.EndDate, d.TravellerCount, d.Message)
	var sp *Sponsorship
	if d.SponsorshipRequested {
		sp = draftSponsorship(d)
	}

	var usr user.User
	err := svc.inTx(ctx, func(exec ...core.DBExecutor) error {
		var err error
		if usr, err = svc.usrSvc.RegisterVerified(ctx, nu, exec...); err != nil {
			return errors.Wrap(err, "registering volunteer")
		}
		bkg.UserID = usr.ID
		if bkg, err = svc.repo.CreateBooking(ctx, bkg, exec...); err != nil {
			return errors.Wrap(err, "creating booking")
		}
		if sp != nil {
			sp.BookingID = bkg.ID
			created, err := svc.repo.CreateSponsorship(ctx, *sp, exec...)
			if err != nil {
				return errors.Wrap(err, "creating sponsorship")
			}
			*sp = created
		}
		return nil
	})
	if err != nil {
		return Booking{}, err
	}

	bkg.Sponsorship = sp
	svc.sendConfirmation(usr, prj, bkg)
	return bkg, nil
}

// draftSponsorship converts the draft's live funding selection into a
// persistable sponsorship. Amounts were already recomputed on every
// mutation; totals are summed from the items one last time regardless.
func draftSponsorship(d Draft) *Sponsorship {
	sp := &Sponsorship{
		Items:      d.SponsorshipItems(),
		SelfIntro:  core.CleanString(d.Narrative.SelfIntro),
		Skills:     core.CleanString(d.Narrative.Skills),
		Impact:     core.CleanString(d.Narrative.Impact),
		Commitment: core.CleanString(d.Narrative.Commitment),
		Agreement:  d.Narrative.Agreement,
		Privacy:    d.Narrative.Privacy,
		CreatedAt:  time.Now().UTC(),
	}
	for _, item := range sp.Items {
		sp.TotalCents += item.AmountCents
	}
	return sp
}

func (svc *Service) editableDraft(ctx context.Context, key string) (Draft, project.Project, error) {
	d, err := svc.drafts.LoadDraft(ctx, key)
	if err != nil {
		return Draft{}, project.Project{}, err
	}
	if !d.BookingEditable() {
		return Draft{}, project.Project{}, ErrInvalidStep
	}
	prj, err := svc.activeProject(ctx, d.ProjectID)
	if err != nil {
		return Draft{}, project.Project{}, err
	}
	return d, prj, nil
}

func (svc *Service) saveDraft(ctx context.Context, d *Draft) error {
	d.UpdatedAt = time.Now().UTC()
	return errors.Wrap(svc.drafts.SaveDraft(ctx, *d), "saving draft")
}
