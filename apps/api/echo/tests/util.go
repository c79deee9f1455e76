package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	echoapi "github.com/bunjo05/volunteer-faster/apps/api/echo"
	"github.com/bunjo05/volunteer-faster/core"
	"github.com/bunjo05/volunteer-faster/core/booking"
	"github.com/bunjo05/volunteer-faster/core/project"
	"github.com/bunjo05/volunteer-faster/core/user"
	emailsvc "github.com/bunjo05/volunteer-faster/services/email"
	inmemdb "github.com/bunjo05/volunteer-faster/storage/database/inmem"
)

var (
	validate *validator.Validate

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

type testApp struct {
	app     *echoapi.Server
	usrRepo user.Repository
	prjRepo project.Repository
	usrSvc  *user.Service
	prjSvc  *project.Service
	bkgSvc  *booking.Service
}

// setup builds a fresh in-memory app per test; nothing leaks across tests.
func setup(t *testing.T) *testApp {
	t.Helper()
	emailsvc.ClearSentMessages()

	// set up DB & repos
	db := inmemdb.NewDB()
	usrRepo := inmemdb.NewUserRepository(db)
	prjRepo := inmemdb.NewProjectRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock()
	usrSvc := user.NewService(nil, usrRepo, mailSvc, core.Conf)
	prjSvc := project.NewService(prjRepo)
	bkgSvc := booking.NewService(
		nil,
		inmemdb.NewBookingRepository(db),
		inmemdb.NewDraftStore(db),
		prjSvc,
		usrSvc,
		mailSvc,
		validate,
		core.Conf,
	)

	// set up server
	app := echoapi.NewServer(echoapi.ServerDeps{
		Conf:       core.Conf,
		Logger:     nopLogger{},
		UserSvc:    usrSvc,
		ProjectSvc: prjSvc,
		BookingSvc: bkgSvc,
		Validate:   validate,
		Translator: core.Translator,
	})

	return &testApp{
		app:     app,
		usrRepo: usrRepo,
		prjRepo: prjRepo,
		usrSvc:  usrSvc,
		prjSvc:  prjSvc,
		bkgSvc:  bkgSvc,
	}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := echoapi.GetUserClaims(usr)
	token, err := echoapi.GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
