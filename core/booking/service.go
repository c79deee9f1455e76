package booking

import (
	"context"
	"net/mail"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/bunjo05/volunteer-faster/core"
	"github.com/bunjo05/volunteer-faster/core/project"
	"github.com/bunjo05/volunteer-faster/core/user"
)

type (
	Repository interface {
		CreateBooking(ctx context.Context, bkg Booking, exec ...core.DBExecutor) (Booking, error)
		CreateSponsorship(ctx context.Context, sp Sponsorship, exec ...core.DBExecutor) (Sponsorship, error)
		// GetBooking loads a booking with its sponsorship attached, if any.
		GetBooking(ctx context.Context, id string, exec ...core.DBExecutor) (Booking, error)
		QueryBookingsByUser(ctx context.Context, userID string, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Booking, error)
	}

	Service struct {
		db       core.DB
		repo     Repository
		drafts   DraftStore
		prjSvc   *project.Service
		usrSvc   *user.Service
		mailSvc  core.EmailService
		validate *validator.Validate
		conf     *core.Config
	}
)

func NewService(
	db core.DB,
	repo Repository,
	drafts DraftStore,
	prjSvc *project.Service,
	usrSvc *user.Service,
	mailSvc core.EmailService,
	validate *validator.Validate,
	conf *core.Config,
) *Service {
	return &Service{
		db:       db,
		repo:     repo,
		drafts:   drafts,
		prjSvc:   prjSvc,
		usrSvc:   usrSvc,
		mailSvc:  mailSvc,
		validate: validate,
		conf:     conf,
	}
}

func (svc *Service) GetByID(ctx context.Context, id string) (Booking, error) {
	return svc.repo.GetBooking(ctx, id)
}

func (svc *Service) QueryByUser(ctx context.Context, userID string, ordering []core.DBOrdering) ([]Booking, error) {
	return svc.repo.QueryBookingsByUser(ctx, userID, ordering)
}

// Create books a project for an authenticated volunteer in one shot, the
// identity gate having already been passed at login.
func (svc *Service) Create(ctx context.Context, usr user.User, nb NewBooking) (Booking, error) {
	prj, err := svc.activeProject(ctx, nb.ProjectID)
	if err != nil {
		return Booking{}, err
	}

	start, end := nb.ParsedDates()
	bkg := buildBooking(prj, usr.ID, start, end, nb.TravellerCount, nb.Message)

	var sp *Sponsorship
	if nb.SponsorshipRequested {
		sp = buildSponsorship(prj, bkg.DurationDays, nb.Aspects, SponsorshipNarrative{
			SelfIntro:  nb.SelfIntro,
			Skills:     nb.Skills,
			Impact:     nb.Impact,
			Commitment: nb.Commitment,
			Agreement:  nb.Agreement,
			Privacy:    nb.Privacy,
		})
	}

	bkg, err = svc.persist(ctx, bkg, sp)
	if err != nil {
		return Booking{}, err
	}

	svc.sendConfirmation(usr, prj, bkg)
	return bkg, nil
}

func (svc *Service) activeProject(ctx context.Context, id string) (project.Project, error) {
	prj, err := svc.prjSvc.GetByID(ctx, id)
	if err != nil {
		return project.Project{}, err
	}
	if !prj.IsActive {
		return project.Project{}, project.ErrNotFound
	}
	return prj, nil
}

func buildBooking(prj project.Project, userID string, start, end time.Time, travellers int, message string) Booking {
	if travellers < 1 {
		travellers = 1
	}
	now := time.Now().UTC()
	return Booking{
		ProjectID:      prj.ID,
		UserID:         userID,
		StartDate:      start,
		EndDate:        end,
		DurationDays:   DurationDays(start, end),
		TravellerCount: travellers,
		Message:        core.CleanString(message),
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// buildSponsorship re-derives every amount server-side: unavailable aspects
// are dropped and the project-fees line is recomputed from the duration,
// whatever the client sent.
func buildSponsorship(prj project.Project, days int, aspects []AspectAmountInput, narrative SponsorshipNarrative) *Sponsorship {
	amounts := make(map[Aspect]int64, len(aspects))
	for _, aa := range aspects {
		if !aa.Aspect.Valid() || !aspectAvailable(prj, aa.Aspect) {
			continue
		}
		if aa.Aspect == AspectProjectFees {
			amounts[aa.Aspect] = int64(days) * prj.DailyFeeCents
		} else {
			amounts[aa.Aspect] = ParseAmountCents(aa.Amount)
		}
	}

	d := Draft{Amounts: amounts}
	sp := &Sponsorship{
		Items:      d.SponsorshipItems(),
		SelfIntro:  core.CleanString(narrative.SelfIntro),
		Skills:     core.CleanString(narrative.Skills),
		Impact:     core.CleanString(narrative.Impact),
		Commitment: core.CleanString(narrative.Commitment),
		Agreement:  narrative.Agreement,
		Privacy:    narrative.Privacy,
		CreatedAt:  time.Now().UTC(),
	}
	for _, item := range sp.Items {
		sp.TotalCents += item.AmountCents
	}
	return sp
}

// persist writes the booking and its optional sponsorship atomically.
func (svc *Service) persist(ctx context.Context, bkg Booking, sp *Sponsorship) (Booking, error) {
	err := svc.inTx(ctx, func(exec ...core.DBExecutor) error {
		var err error
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
	return bkg, nil
}

func (svc *Service) inTx(ctx context.Context, fn func(exec ...core.DBExecutor) error) error {
	if svc.db == nil {
		return fn()
	}
	tx, err := svc.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

func (svc *Service) sendConfirmation(usr user.User, prj project.Project, bkg Booking) {
	var totalCents int64
	sponsored := bkg.Sponsorship != nil
	if sponsored {
		totalCents = bkg.Sponsorship.TotalCents
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Your booking request was received",
		TemplateName: "booking-confirmed",
		TemplateData: struct {
			Name         string
			ProjectName  string
			StartDate    string
			EndDate      string
			DurationDays int
			Sponsored    bool
			Total        string
		}{
			usr.Name,
			prj.Name,
			bkg.StartDate.Format("2006-01-02"),
			bkg.EndDate.Format("2006-01-02"),
			bkg.DurationDays,
			sponsored,
			FormatCents(totalCents),
		},
	})
}
