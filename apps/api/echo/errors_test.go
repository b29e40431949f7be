package echoapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beautyschool/calculator/core"
	"github.com/beautyschool/calculator/tests"
)

func Test_appHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantCode     int
		wantData     string
		wantLogged   bool
		wantShutdown bool
	}{
		{
			name: "http error", err: errHttpForbidden,
			wantCode: http.StatusForbidden, wantData: `{"error": "permission denied"}`,
		},
		{
			name: "wrapped http error", err: errors.Wrap(errMissingToken, "authenticating"),
			wantCode: http.StatusUnauthorized, wantData: `{"error": "missing or malformed jwt"}`,
		},
		{
			name: "coded validation error", err: core.NewCodedValidationError("invalid_thing", "Invalid thing."),
			wantCode: http.StatusBadRequest, wantData: `{"error": "Invalid thing.", "code": "invalid_thing"}`,
		},
		{
			name: "field validation error", err: core.NewValidationError(nil, core.FieldError{Field: "name", Error: "too long"}),
			wantCode: http.StatusBadRequest, wantData: `{"name": "too long"}`,
		},
		{
			name: "plain validation error", err: core.NewValidationError(errors.New("bad input")),
			wantCode: http.StatusBadRequest, wantData: `{"error": "bad input"}`,
		},
		{
			name: "server error", err: errors.New("connection refused"),
			wantCode: http.StatusInternalServerError, wantData: `{"error": "Internal Server Error"}`, wantLogged: true,
		},
		{
			name: "shutdown error", err: errors.Wrap(core.NewShutdownError("integrity issue"), "saving settings"),
			wantCode: http.StatusInternalServerError, wantData: `{"error": "Internal Server Error"}`, wantLogged: true, wantShutdown: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := testutil.NewLogger()
			var shutdown bool
			handler := newAppHTTPErrorHandler(logger, core.NewTranslator(), func() { shutdown = true })

			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/v1/settings", nil)
			rec := httptest.NewRecorder()
			rec.Header().Set(echo.HeaderXRequestID, "req-1")
			handler(tt.err, e.NewContext(req, rec))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantData, rec.Body.String())
			assert.Equal(t, tt.wantShutdown, shutdown)

			logged := logger.Entries("error")
			if !tt.wantLogged {
				assert.Empty(t, logged)
				return
			}
			require.Len(t, logged, 1)
			assert.Contains(t, logged[0].Args, core.RequestInfo{ID: "req-1", Method: http.MethodPost, Path: "/v1/settings", IP: "192.0.2.1"})
		})
	}
}

func Test_appHTTPErrorHandler_head(t *testing.T) {
	handler := newAppHTTPErrorHandler(testutil.NewLogger(), core.NewTranslator(), func() {})

	req := httptest.NewRequest(http.MethodHead, "/", nil)
	rec := httptest.NewRecorder()
	handler(errHttpForbidden, echo.New().NewContext(req, rec))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Body.String())
}
