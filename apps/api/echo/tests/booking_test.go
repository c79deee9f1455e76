package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	echoapi "github.com/bunjo05/volunteer-faster/apps/api/echo"
	"github.com/bunjo05/volunteer-faster/core/booking"
	"github.com/bunjo05/volunteer-faster/core/user"
	emailsvc "github.com/bunjo05/volunteer-faster/services/email"
	testutil "github.com/bunjo05/volunteer-faster/tests"
)

func Test_bookingApi_bookingCreate(t *testing.T) {
	app := setup(t)

	org := testutil.CreateOrganization(t, app.prjRepo, "Green Steps", "Kenya")
	prj := testutil.CreateProject(t, app.prjRepo, org.ID, "Turtle Conservation", "Kenya", 2000, "Accommodation")
	volunteer := testutil.CreateUser(t, app.usrRepo, "Jo Doe", "jo@test.cd", "Str0ng&Pass", []string{user.RoleVolunteer}, true)
	volunteerToken := getToken(t, volunteer)

	reqMsg := "this field is required"
	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "required fields", token: volunteerToken, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"project_id": reqMsg, "start_date": reqMsg, "end_date": reqMsg}),
		},
		{
			name: "end date before start date", token: volunteerToken, wantCode: http.StatusBadRequest,
			body: marchallObj(t, booking.NewBooking{
				ProjectID: prj.ID, StartDate: "2026-06-05", EndDate: "2026-06-01",
			}),
			wantData: marchallObj(t, map[string]string{"end_date": "end date cannot be before start date"}),
		},
		{
			name: "unknown project", token: volunteerToken, wantCode: http.StatusNotFound,
			body:     marchallObj(t, booking.NewBooking{ProjectID: "lol", StartDate: "2026-06-01", EndDate: "2026-06-05"}),
			wantData: marchallObj(t, httpErr{Error: "project not found"}),
		},
		{
			name: "booked with sponsorship", token: volunteerToken, wantCode: http.StatusCreated,
			body: marchallObj(t, booking.NewBooking{
				ProjectID:            prj.ID,
				StartDate:            "2026-06-01",
				EndDate:              "2026-06-05",
				TravellerCount:       1,
				SponsorshipRequested: true,
				Aspects: []booking.AspectAmountInput{
					{Aspect: booking.AspectTravel, Amount: "300.00"},
					{Aspect: booking.AspectProjectFees, Amount: "1.00"}, // never trusted; re-derived
				},
				SelfIntro:  "I love turtles",
				Skills:     "Diving",
				Impact:     "Cleaner beaches",
				Commitment: "Daily patrols",
				Agreement:  true,
				Privacy:    true,
			}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/bookings"

		t.Run(tt.name, func(t *testing.T) {
			emailsvc.ClearSentMessages()

			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				var bkg booking.Booking
				if err := json.Unmarshal(rec.Body.Bytes(), &bkg); err != nil {
					t.Fatalf("json.Unmarshal(): %v", err)
				}
				if bkg.UserID != volunteer.ID || bkg.Status != booking.StatusPending {
					t.Errorf("failed! booking = %+v", bkg)
				}
				if bkg.DurationDays != 4 {
					t.Errorf("duration = %d, want 4", bkg.DurationDays)
				}
				if bkg.Sponsorship == nil {
					t.Fatal("sponsorship missing")
				}
				// 4 days x 20.00 project fees + 300.00 travel
				if bkg.Sponsorship.TotalCents != 38000 {
					t.Errorf("total = %d, want 38000", bkg.Sponsorship.TotalCents)
				}
				if len(emailsvc.SentMessages) != 1 {
					t.Fatalf("len(SentMessages) = %d; want 1", len(emailsvc.SentMessages))
				}
				if subj := emailsvc.SentMessages[0].Subject; subj != "Your booking request was received" {
					t.Errorf("subject = %q", subj)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_bookingApi_bookingQueryAndRetrieve(t *testing.T) {
	app := setup(t)
	ctx := context.Background()

	org := testutil.CreateOrganization(t, app.prjRepo, "Green Steps", "Kenya")
	prj := testutil.CreateProject(t, app.prjRepo, org.ID, "Turtle Conservation", "Kenya", 2000)
	volunteer := testutil.CreateUser(t, app.usrRepo, "Jo Doe", "jo@test.cd", "Str0ng&Pass", []string{user.RoleVolunteer}, true)
	other := testutil.CreateUser(t, app.usrRepo, "Ama", "ama@test.cd", "Str0ng&Pass", []string{user.RoleVolunteer}, true)
	admin := testutil.CreateUser(t, app.usrRepo, "Boss", "boss@test.cd", "Str0ng&Pass", []string{user.RoleAdmin}, true)

	bkg, err := app.bkgSvc.Create(ctx, volunteer, booking.NewBooking{
		ProjectID: prj.ID, StartDate: "2026-06-01", EndDate: "2026-06-05",
	})
	if err != nil {
		t.Fatalf("Create(booking): %v", err)
	}

	empty := marchallList(t, []interface{}{}...)

	tests := []httpTest{
		{name: "Auth required", method: http.MethodGet, path: "/v1/bookings", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "own bookings", method: http.MethodGet, path: "/v1/bookings", token: getToken(t, volunteer),
			wantCode: http.StatusOK, wantData: marchallList(t, bkg),
		},
		{
			name: "no bookings", method: http.MethodGet, path: "/v1/bookings", token: getToken(t, other),
			wantCode: http.StatusOK, wantData: empty,
		},
		{
			name: "owner retrieves", method: http.MethodGet, path: "/v1/bookings/" + bkg.ID, token: getToken(t, volunteer),
			wantCode: http.StatusOK, wantData: marchallObj(t, bkg),
		},
		{
			// someone else's booking does not exist as far as you know
			name: "not the owner", method: http.MethodGet, path: "/v1/bookings/" + bkg.ID, token: getToken(t, other),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name: "admin retrieves any", method: http.MethodGet, path: "/v1/bookings/" + bkg.ID, token: getToken(t, admin),
			wantCode: http.StatusOK, wantData: marchallObj(t, bkg),
		},
		{
			name: "unknown booking", method: http.MethodGet, path: "/v1/bookings/lol", token: getToken(t, volunteer),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "booking not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

// postDraft hits a wizard endpoint and decodes the returned draft.
func postDraft(t *testing.T, app *testApp, method, path string, body []byte) (booking.Draft, *http.Response, string) {
	t.Helper()
	req, rec := newRequest(method, path, body)
	app.app.ServeHTTP(rec, req)

	var d booking.Draft
	if rec.Code == http.StatusOK || rec.Code == http.StatusCreated {
		if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
			t.Fatalf("json.Unmarshal(draft): %v", err)
		}
	}
	return d, rec.Result(), rec.Body.String()
}

func Test_bookingApi_wizardAnonymous(t *testing.T) {
	app := setup(t)
	ctx := context.Background()

	org := testutil.CreateOrganization(t, app.prjRepo, "Green Steps", "Kenya")
	prj := testutil.CreateProject(t, app.prjRepo, org.ID, "Turtle Conservation", "Kenya", 2000, "Accommodation")
	testutil.CreateUser(t, app.usrRepo, "Old Timer", "old@test.cd", "Str0ng&Pass", []string{user.RoleVolunteer}, true)

	// a draft needs a project
	req, rec := newRequest(http.MethodPost, "/v1/booking-drafts", nil)
	app.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"project_id": "this field is required"})}, rec)

	req, rec = newRequest(http.MethodPost, "/v1/booking-drafts", marchallObj(t, echoapi.StartDraftRequest{ProjectID: "lol"}))
	app.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "project not found"})}, rec)

	d, resp, body := postDraft(t, app, http.MethodPost, "/v1/booking-drafts", marchallObj(t, echoapi.StartDraftRequest{ProjectID: prj.ID}))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("start: code = %v; body %s", resp.StatusCode, body)
	}
	if d.Key == "" || d.Step != booking.StepCollectEmail || d.Authenticated {
		t.Fatalf("start: draft = %+v", d)
	}
	base := "/v1/booking-drafts/" + d.Key

	// unknown keys 404
	req, rec = newRequest(http.MethodGet, "/v1/booking-drafts/lol", nil)
	app.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "booking draft not found"})}, rec)

	// the identity gate halts on a known email; the frontend gets the flagged
	// draft back with a 200 and offers the login transition instead
	d, resp, body = postDraft(t, app, http.MethodPost, base+"/email", marchallObj(t, booking.EmailStepInput{Email: "old@test.cd"}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("email(known): code = %v; body %s", resp.StatusCode, body)
	}
	if !d.EmailExists || d.Step != booking.StepCollectEmail {
		t.Fatalf("email(known): draft = %+v", d)
	}

	// a fresh email advances to the code step
	d, resp, body = postDraft(t, app, http.MethodPost, base+"/email", marchallObj(t, booking.EmailStepInput{Email: "  Jo@Test.cd "}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("email: code = %v; body %s", resp.StatusCode, body)
	}
	if d.Email != "jo@test.cd" || d.EmailExists || d.Step != booking.StepAwaitCode {
		t.Fatalf("email: draft = %+v", d)
	}
	code := lastSentCode(t)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	req, rec = newRequest(http.MethodPost, base+"/email/verify", marchallObj(t, booking.CodeStepInput{Code: wrong}))
	app.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"code": "invalid verification code"})}, rec)

	d, resp, body = postDraft(t, app, http.MethodPost, base+"/email/verify", marchallObj(t, booking.CodeStepInput{Code: code}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify: code = %v; body %s", resp.StatusCode, body)
	}
	if !d.EmailVerified || d.Step != booking.StepProfile {
		t.Fatalf("verify: draft = %+v", d)
	}

	d, resp, body = postDraft(t, app, http.MethodPost, base+"/profile", marchallObj(t, booking.ProfileStepInput{
		Name: "Jo Doe", Password: "Str0ng&Pass", PasswordConfirm: "Str0ng&Pass", Gender: "female", BirthDate: "1995-04-12",
	}))
	if resp.StatusCode != http.StatusOK || d.Step != booking.StepContact {
		t.Fatalf("profile: code = %v; draft = %+v; body %s", resp.StatusCode, d, body)
	}

	d, resp, body = postDraft(t, app, http.MethodPost, base+"/contact", marchallObj(t, booking.ContactStepInput{
		Country: "DR Congo", Address: "12 Av. des Aviateurs", City: "Kinshasa",
	}))
	if resp.StatusCode != http.StatusOK || d.Step != booking.StepBooking {
		t.Fatalf("contact: code = %v; draft = %+v; body %s", resp.StatusCode, d, body)
	}

	// going back keeps what was collected
	d, resp, body = postDraft(t, app, http.MethodPost, base+"/back", nil)
	if resp.StatusCode != http.StatusOK || d.Step != booking.StepContact {
		t.Fatalf("back: code = %v; draft = %+v; body %s", resp.StatusCode, d, body)
	}
	if d.Email != "jo@test.cd" || d.Profile.Name != "Jo Doe" {
		t.Fatalf("back: collected data lost: %+v", d)
	}
	d, resp, body = postDraft(t, app, http.MethodPost, base+"/contact", marchallObj(t, booking.ContactStepInput{
		Country: "DR Congo", Address: "12 Av. des Aviateurs", City: "Kinshasa",
	}))
	if resp.StatusCode != http.StatusOK || d.Step != booking.StepBooking {
		t.Fatalf("contact(again): code = %v; draft = %+v; body %s", resp.StatusCode, d, body)
	}

	// no dates, no booking
	req, rec = newRequest(http.MethodPost, base+"/submit", nil)
	app.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"start_date": "booking dates are required"})}, rec)

	req, rec = newRequest(http.MethodPut, base+"/dates", marchallObj(t, booking.DatesInput{StartDate: "2026-06-05", EndDate: "2026-06-01"}))
	app.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"end_date": "end date cannot be before start date"})}, rec)

	d, resp, body = postDraft(t, app, http.MethodPut, base+"/dates", marchallObj(t, booking.DatesInput{StartDate: "2026-06-01", EndDate: "2026-06-05"}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dates: code = %v; body %s", resp.StatusCode, body)
	}

	// funding: travel at 300.00, project fees derived from the dates
	d, resp, body = postDraft(t, app, http.MethodPost, base+"/funding/toggle", marchallObj(t, booking.AspectToggleInput{Aspect: booking.AspectTravel, Selected: true}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("toggle(travel): code = %v; body %s", resp.StatusCode, body)
	}
	d, resp, body = postDraft(t, app, http.MethodPut, base+"/funding/amount", marchallObj(t, booking.AspectAmountInput{Aspect: booking.AspectTravel, Amount: "300.00"}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("amount(travel): code = %v; body %s", resp.StatusCode, body)
	}
	d, resp, body = postDraft(t, app, http.MethodPost, base+"/funding/toggle", marchallObj(t, booking.AspectToggleInput{Aspect: booking.AspectProjectFees, Selected: true}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("toggle(project_fees): code = %v; body %s", resp.StatusCode, body)
	}
	if d.Amounts[booking.AspectTravel] != 30000 {
		t.Errorf("travel = %d, want 30000", d.Amounts[booking.AspectTravel])
	}
	if d.Amounts[booking.AspectProjectFees] != 8000 { // 4 days x 20.00
		t.Errorf("project_fees = %d, want 8000", d.Amounts[booking.AspectProjectFees])
	}
	if d.TotalCents != 38000 {
		t.Errorf("total = %d, want 38000", d.TotalCents)
	}

	// sponsorship needs the consents
	d, resp, body = postDraft(t, app, http.MethodPut, base+"/details", marchallObj(t, map[string]interface{}{
		"sponsorship_requested": true,
		"narrative": booking.SponsorshipNarrative{
			SelfIntro: "I love turtles", Skills: "Diving", Impact: "Cleaner beaches", Commitment: "Daily patrols",
		},
	}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("details: code = %v; body %s", resp.StatusCode, body)
	}
	req, rec = newRequest(http.MethodPost, base+"/submit", nil)
	app.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"agreement": "sponsorship terms must be accepted"})}, rec)

	d, resp, body = postDraft(t, app, http.MethodPut, base+"/details", marchallObj(t, map[string]interface{}{
		"narrative": booking.SponsorshipNarrative{
			SelfIntro: "I love turtles", Skills: "Diving", Impact: "Cleaner beaches", Commitment: "Daily patrols",
			Agreement: true, Privacy: true,
		},
	}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("details(consents): code = %v; body %s", resp.StatusCode, body)
	}

	emailsvc.ClearSentMessages()
	req, rec = newRequest(http.MethodPost, base+"/submit", nil)
	app.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: code = %v; body %s", rec.Code, rec.Body.String())
	}
	var bkg booking.Booking
	if err := json.Unmarshal(rec.Body.Bytes(), &bkg); err != nil {
		t.Fatalf("json.Unmarshal(booking): %v", err)
	}
	if bkg.Status != booking.StatusPending || bkg.DurationDays != 4 {
		t.Errorf("booking = %+v", bkg)
	}
	if bkg.Sponsorship == nil || bkg.Sponsorship.TotalCents != 38000 {
		t.Errorf("sponsorship = %+v", bkg.Sponsorship)
	}

	// the verified account was registered alongside the booking
	usr, err := app.usrRepo.GetUser(ctx, user.GetFilter{Email: "jo@test.cd"})
	if err != nil {
		t.Fatalf("GetUser(): %v", err)
	}
	if !usr.EmailVerified || usr.ID != bkg.UserID {
		t.Errorf("registered user = %+v", usr)
	}
	if err = usr.CheckPassword("Str0ng&Pass"); err != nil {
		t.Error("registered user password mismatch")
	}

	if len(emailsvc.SentMessages) != 1 {
		t.Fatalf("len(SentMessages) = %d; want 1", len(emailsvc.SentMessages))
	}
	if subj := emailsvc.SentMessages[0].Subject; subj != "Your booking request was received" {
		t.Errorf("subject = %q", subj)
	}

	// the draft is gone once submitted
	req, rec = newRequest(http.MethodGet, base, nil)
	app.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "booking draft not found"})}, rec)
}

func Test_bookingApi_wizardLoginAndResume(t *testing.T) {
	app := setup(t)

	org := testutil.CreateOrganization(t, app.prjRepo, "Green Steps", "Kenya")
	prj := testutil.CreateProject(t, app.prjRepo, org.ID, "Turtle Conservation", "Kenya", 2000)
	testutil.CreateUser(t, app.usrRepo, "Jo Doe", "jo@test.cd", "Str0ng&Pass", []string{user.RoleVolunteer}, true)

	d, resp, body := postDraft(t, app, http.MethodPost, "/v1/booking-drafts", marchallObj(t, echoapi.StartDraftRequest{ProjectID: prj.ID}))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("start: code = %v; body %s", resp.StatusCode, body)
	}
	base := "/v1/booking-drafts/" + d.Key

	d, resp, body = postDraft(t, app, http.MethodPost, base+"/email", marchallObj(t, booking.EmailStepInput{Email: "jo@test.cd"}))
	if resp.StatusCode != http.StatusOK || !d.EmailExists {
		t.Fatalf("email: code = %v; draft = %+v; body %s", resp.StatusCode, d, body)
	}

	req, rec := newRequest(http.MethodPost, base+"/login", marchallObj(t, echoapi.LoginRequest{Email: "jo@test.cd", Password: "lol"}))
	app.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"})}, rec)

	req, rec = newRequest(http.MethodPost, base+"/login", marchallObj(t, echoapi.LoginRequest{Email: "jo@test.cd", Password: "Str0ng&Pass"}))
	app.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: code = %v; body %s", rec.Code, rec.Body.String())
	}
	var loginResp echoapi.DraftLoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("json.Unmarshal(): %v", err)
	}
	if loginResp.Token == "" {
		t.Error("empty token")
	}
	d = loginResp.Draft
	if !d.Authenticated || d.Step != booking.StepReady || d.EmailExists {
		t.Fatalf("resumed draft = %+v", d)
	}

	// the resumed draft books directly
	d, resp, body = postDraft(t, app, http.MethodPut, base+"/dates", marchallObj(t, booking.DatesInput{StartDate: "2026-06-01", EndDate: "2026-06-03"}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dates: code = %v; body %s", resp.StatusCode, body)
	}
	req, rec = newRequest(http.MethodPost, base+"/submit", nil)
	app.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: code = %v; body %s", rec.Code, rec.Body.String())
	}
	var bkg booking.Booking
	if err := json.Unmarshal(rec.Body.Bytes(), &bkg); err != nil {
		t.Fatalf("json.Unmarshal(booking): %v", err)
	}
	if bkg.UserID != d.UserID || bkg.DurationDays != 2 {
		t.Errorf("booking = %+v", bkg)
	}
}

func Test_bookingApi_wizardAuthenticatedStart(t *testing.T) {
	app := setup(t)

	org := testutil.CreateOrganization(t, app.prjRepo, "Green Steps", "Kenya")
	prj := testutil.CreateProject(t, app.prjRepo, org.ID, "Turtle Conservation", "Kenya", 2000)
	volunteer := testutil.CreateUser(t, app.usrRepo, "Jo Doe", "jo@test.cd", "Str0ng&Pass", []string{user.RoleVolunteer}, true)

	req, rec := newAuthRequest(http.MethodPost, "/v1/booking-drafts", getToken(t, volunteer), marchallObj(t, echoapi.StartDraftRequest{ProjectID: prj.ID}))
	app.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start: code = %v; body %s", rec.Code, rec.Body.String())
	}
	var d booking.Draft
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("json.Unmarshal(draft): %v", err)
	}
	if !d.Authenticated || d.UserID != volunteer.ID || d.Step != booking.StepReady {
		t.Fatalf("draft = %+v", d)
	}
	base := "/v1/booking-drafts/" + d.Key

	// the identity gate is behind them; its steps are off-limits
	req, rec = newRequest(http.MethodPost, base+"/email", marchallObj(t, booking.EmailStepInput{Email: "new@test.cd"}))
	app.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusConflict, wantData: marchallObj(t, httpErr{Error: "operation not allowed at the current step"})}, rec)

	d, resp, body := postDraft(t, app, http.MethodPut, base+"/dates", marchallObj(t, booking.DatesInput{StartDate: "2026-06-01", EndDate: "2026-06-05"}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dates: code = %v; body %s", resp.StatusCode, body)
	}
	req, rec = newRequest(http.MethodPost, base+"/submit", nil)
	app.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: code = %v; body %s", rec.Code, rec.Body.String())
	}
	var bkg booking.Booking
	if err := json.Unmarshal(rec.Body.Bytes(), &bkg); err != nil {
		t.Fatalf("json.Unmarshal(booking): %v", err)
	}
	if bkg.UserID != volunteer.ID || bkg.DurationDays != 4 {
		t.Errorf("booking = %+v", bkg)
	}
}
