package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/beautyschool/calculator/core"
	"github.com/beautyschool/calculator/core/calculator"
)

var (
	errMissingToken      = echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed jwt")
	errInvalidToken      = echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired jwt")
	errHttpForbidden     = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errFAFSADisabled     = echo.NewHTTPError(http.StatusForbidden, "FAFSA calculator is disabled")
	errMalformedBody     = echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	errUnsupportedFormat = echo.NewHTTPError(http.StatusUnsupportedMediaType, "unsupported content type")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *calculator.Error:
			code = http.StatusBadRequest
			message = echo.Map{"error": origErr.Message, "code": origErr.Kind}
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			if vErr, ok := core.TranslateValidationErrors(origErr, translator).(*core.ValidationError); ok {
				message = vErr.FieldMap()
			}
		case *core.ValidationError:
			code = http.StatusBadRequest
			switch {
			case origErr.Code != "":
				message = echo.Map{"error": origErr.Error(), "code": origErr.Code}
			case len(origErr.Fields) > 0:
				message = origErr.FieldMap()
			default:
				message = origErr.Error()
			}
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			logger.Error(msg, errors.Wrap(err, msg), requestInfo(ctx))

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

func requestInfo(ctx echo.Context) core.RequestInfo {
	return core.RequestInfo{
		ID:     ctx.Response().Header().Get(echo.HeaderXRequestID),
		Method: ctx.Request().Method,
		Path:   ctx.Request().URL.Path,
		IP:     ctx.RealIP(),
	}
}
