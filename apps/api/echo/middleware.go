package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/beautyschool/calculator/core/course"
)

func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			if claims.IsAdmin {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// fafsaEnabledMiddleware rejects requests while the FAFSA calculator is turned off.
func fafsaEnabledMiddleware(svc *course.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			enabled, err := svc.FAFSAEnabled(ctx.Request().Context())
			if err != nil {
				return errors.Wrap(err, "checking FAFSA calculator")
			}
			if !enabled {
				return errFAFSADisabled
			}
			return next(ctx)
		}
	}
}
