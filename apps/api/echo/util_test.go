package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/beautyschool/calculator/core"
	"github.com/beautyschool/calculator/core/course"
	"github.com/beautyschool/calculator/storage/database/sqlx"
	"github.com/beautyschool/calculator/tests"
)

type testApp struct {
	server *Server
	svc    *course.Service
	conf   *core.Config
	logger *testutil.Logger
}

// setup starts a server over an activated SQLite store.
func setup(t *testing.T) testApp {
	conf := core.NewTestConfig()
	logger := testutil.NewLogger()

	repo := sqlxrepos.NewSettingsRepository(testutil.PrepareDB(t))
	svc := course.NewService(repo, course.NewMemoryCache(conf.CacheTTL), logger)
	if err := svc.Activate(context.Background(), "test"); err != nil {
		t.Fatalf("Activate() failed: %v", err)
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	server := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		CourseSvc:  svc,
		Validate:   validate,
		Translator: translator,
	})
	t.Cleanup(func() { _ = server.Close() })

	return testApp{server: server, svc: svc, conf: conf, logger: logger}
}

type httpErr struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	form     url.Values
	token    string
	wantCode int
	wantData []byte
}

func (tt httpTest) request() (*http.Request, *httptest.ResponseRecorder) {
	method := tt.method
	if method == "" {
		method = http.MethodGet
	}

	var req *http.Request
	if tt.form != nil {
		req = httptest.NewRequest(method, tt.path, strings.NewReader(tt.form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, tt.path, bytes.NewReader(tt.body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if tt.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tt.token)
	}
	return req, httptest.NewRecorder()
}

func (app testApp) run(t *testing.T, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := tt.request()
			app.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func getToken(t *testing.T, conf *core.Config, admin bool) string {
	claims := NewAdminClaims("admin", conf)
	claims.IsAdmin = admin
	token, err := GenerateToken(claims, conf.SecretKey)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	wantCode := tt.wantCode
	if wantCode == 0 {
		wantCode = http.StatusOK
	}
	if rec.Code != wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
