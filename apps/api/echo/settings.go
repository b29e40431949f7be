package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/beautyschool/calculator/core/course"
)

type settingsApi struct {
	svc      *course.Service
	validate *validator.Validate
}

func registerSettingsAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *course.Service,
	validate *validator.Validate,
) {
	api := settingsApi{
		svc:      svc,
		validate: validate,
	}

	sg := g.Group("/settings", jwt, adminMiddleware())
	sg.GET("", api.retrieve)
	sg.PUT("", api.update)
}

// Handlers

func (api *settingsApi) retrieve(ctx echo.Context) error {
	settings, err := api.svc.Settings(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting settings")
	}
	return ctx.JSON(http.StatusOK, course.NewUpdateSettings(settings))
}

func (api *settingsApi) update(ctx echo.Context) error {
	var data course.UpdateSettings
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSettings")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	settings, err := api.svc.Save(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "saving settings")
	}
	return ctx.JSON(http.StatusOK, course.NewUpdateSettings(settings))
}
