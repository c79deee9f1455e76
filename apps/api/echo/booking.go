package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bunjo05/volunteer-faster/core/booking"
	"github.com/bunjo05/volunteer-faster/core/user"
)

type bookingApi struct {
	svc      *booking.Service
	usrSvc   *user.Service
	validate *validator.Validate
}

func registerBookingAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *booking.Service, usrSvc *user.Service, validate *validator.Validate) {
	api := bookingApi{
		svc:      svc,
		usrSvc:   usrSvc,
		validate: validate,
	}

	bg := g.Group("/bookings", jwt)
	bg.POST("", api.create)
	bg.GET("", api.query)
	bg.GET("/:id", api.retrieve)

	// the wizard serves anonymous visitors; drafts are addressed by their
	// unguessable session key
	dg := g.Group("/booking-drafts")
	dg.POST("", api.startDraft)
	dg.GET("/:key", api.getDraft)
	dg.POST("/:key/email", api.submitEmail)
	dg.POST("/:key/email/verify", api.verifyEmail)
	dg.POST("/:key/login", api.loginAndResume)
	dg.POST("/:key/profile", api.submitProfile)
	dg.POST("/:key/contact", api.submitContact)
	dg.PUT("/:key/dates", api.updateDates)
	dg.PUT("/:key/details", api.updateDetails)
	dg.POST("/:key/funding/toggle", api.toggleAspect)
	dg.PUT("/:key/funding/amount", api.setAspectAmount)
	dg.POST("/:key/back", api.prevStep)
	dg.POST("/:key/submit", api.submit)
}

// Authenticated booking endpoints

func (api *bookingApi) create(ctx echo.Context) error {
	var data booking.NewBooking
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBooking")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	bkg, err := api.svc.Create(ctx.Request().Context(), usr, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, bkg)
}

func (api *bookingApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	ordering := new(Ordering)
	ordering.Bind(ctx)

	bookings, err := api.svc.QueryByUser(ctx.Request().Context(), usr.ID, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying bookings")
	}
	if bookings == nil {
		bookings = []booking.Booking{}
	}
	return ctx.JSON(http.StatusOK, bookings)
}

func (api *bookingApi) retrieve(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	bkg, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	if bkg.UserID != usr.ID && !usr.IsAdmin() {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, bkg)
}

// Wizard endpoints

func (api *bookingApi) startDraft(ctx echo.Context) error {
	var data StartDraftRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StartDraftRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	authUsr, err := getOptionalUser(ctx, api.usrSvc)
	if err != nil {
		return err
	}

	d, err := api.svc.StartDraft(ctx.Request().Context(), data.ProjectID, authUsr)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, d)
}

func (api *bookingApi) getDraft(ctx echo.Context) error {
	d, err := api.svc.GetDraft(ctx.Request().Context(), ctx.Param("key"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, d)
}

func (api *bookingApi) submitEmail(ctx echo.Context) error {
	var data booking.EmailStepInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to EmailStepInput")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	d, err := api.svc.SubmitEmail(ctx.Request().Context(), ctx.Param("key"), data)
	if errors.Cause(err) == booking.ErrEmailTaken {
		// not an error for the wizard: the frontend offers the login
		// transition off the email_exists flag
		return ctx.JSON(http.StatusOK, d)
	}
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, d)
}

func (api *bookingApi) verifyEmail(ctx echo.Context) error {
	var data booking.CodeStepInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CodeStepInput")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	d, err := api.svc.VerifyEmail(ctx.Request().Context(), ctx.Param("key"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, d)
}

// loginAndResume is the identity gate's side channel: an existing account
// holder logs in without leaving the wizard and the draft resumes
// authenticated.
func (api *bookingApi) loginAndResume(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	rctx := ctx.Request().Context()
	usr, err := authenticate(rctx, data.Email, data.Password, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}

	d, err := api.svc.AttachUser(rctx, ctx.Param("key"), usr)
	if err != nil {
		return err
	}

	usr, err = api.usrSvc.SetLastLogin(rctx, usr)
	if err != nil {
		return errors.Wrap(err, "setting lastLogin")
	}
	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, DraftLoginResponse{Token: token, Draft: d})
}

func (api *bookingApi) submitProfile(ctx echo.Context) error {
	var data booking.ProfileStepInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ProfileStepInput")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	d, err := api.svc.SubmitProfile(ctx.Request().Context(), ctx.Param("key"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, d)
}

func (api *bookingApi) submitContact(ctx echo.Context) error {
	var data booking.ContactStepInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ContactStepInput")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	d, err := api.svc.SubmitContact(ctx.Request().Context(), ctx.Param("key"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, d)
}

func (api *bookingApi) updateDates(ctx echo.Context) error {
	var data booking.DatesInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DatesInput")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	d, err := api.svc.UpdateDates(ctx.Request().Context(), ctx.Param("key"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, d)
}

func (api *bookingApi) updateDetails(ctx echo.Context) error {
	var data booking.DetailsInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DetailsInput")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	d, err := api.svc.UpdateDetails(ctx.Request().Context(), ctx.Param("key"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, d)
}

func (api *bookingApi) toggleAspect(ctx echo.Context) error {
	var data booking.AspectToggleInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AspectToggleInput")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	d, err := api.svc.ToggleAspect(ctx.Request().Context(), ctx.Param("key"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, d)
}

func (api *bookingApi) setAspectAmount(ctx echo.Context) error {
	var data booking.AspectAmountInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AspectAmountInput")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	d, err := api.svc.SetAspectAmount(ctx.Request().Context(), ctx.Param("key"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, d)
}

func (api *bookingApi) prevStep(ctx echo.Context) error {
	d, err := api.svc.PrevStep(ctx.Request().Context(), ctx.Param("key"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, d)
}

func (api *bookingApi) submit(ctx echo.Context) error {
	bkg, err := api.svc.Submit(ctx.Request().Context(), ctx.Param("key"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, bkg)
}

type (
	StartDraftRequest struct {
		ProjectID string `json:"project_id" validate:"required"`
	}

	DraftLoginResponse struct {
		Token string        `json:"token"`
		Draft booking.Draft `json:"draft"`
	}
)
