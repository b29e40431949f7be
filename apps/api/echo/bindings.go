package echoapi

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/beautyschool/calculator/core/calculator"
)

// bindRawFields reads the calculator fields from a JSON object or a form body.
// Form values keep only their first occurrence.
func bindRawFields(ctx echo.Context) (calculator.RawFields, error) {
	req := ctx.Request()
	ctype := req.Header.Get(echo.HeaderContentType)

	switch {
	case req.ContentLength == 0 && ctype == "":
		return calculator.RawFields{}, nil
	case strings.HasPrefix(ctype, echo.MIMEApplicationJSON):
		fields := make(calculator.RawFields)
		if err := json.NewDecoder(req.Body).Decode(&fields); err != nil {
			if err == io.EOF {
				return calculator.RawFields{}, nil
			}
			return nil, errMalformedBody.WithInternal(err)
		}
		return fields, nil
	case strings.HasPrefix(ctype, echo.MIMEApplicationForm), strings.HasPrefix(ctype, echo.MIMEMultipartForm):
		params, err := ctx.FormParams()
		if err != nil {
			return nil, errMalformedBody.WithInternal(err)
		}
		fields := make(calculator.RawFields, len(params))
		for k, v := range params {
			if len(v) > 0 {
				fields[k] = v[0]
			}
		}
		return fields, nil
	default:
		return nil, errUnsupportedFormat
	}
}
