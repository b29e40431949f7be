package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/beautyschool/calculator/core/calculator"
	"github.com/beautyschool/calculator/core/course"
)

type calculatorApi struct {
	svc *course.Service
}

func registerCalculatorAPI(g *echo.Group, svc *course.Service) {
	api := calculatorApi{svc: svc}

	g.GET("/courses", api.courses)

	cg := g.Group("/calculate")
	cg.POST("/costs", api.costs)
	cg.POST("/fafsa", api.fafsa, fafsaEnabledMiddleware(svc))
}

// Handlers

func (api *calculatorApi) courses(ctx echo.Context) error {
	settings, err := api.svc.Settings(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting settings")
	}
	return ctx.JSON(http.StatusOK, CoursesResponse{
		Courses:      settings.Courses.List(),
		FAFSAEnabled: settings.FAFSAEnabled,
	})
}

func (api *calculatorApi) costs(ctx echo.Context) error {
	return api.calculate(ctx, calculator.CalculateCosts)
}

func (api *calculatorApi) fafsa(ctx echo.Context) error {
	return api.calculate(ctx, calculator.CalculateFAFSA)
}

func (api *calculatorApi) calculate(ctx echo.Context, calculate func(course.Catalog, calculator.RawFields) (calculator.Result, error)) error {
	fields, err := bindRawFields(ctx)
	if err != nil {
		return err
	}

	catalog, err := api.svc.Courses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting courses")
	}

	res, err := calculate(catalog, fields)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

type CoursesResponse struct {
	Courses      []course.Course `json:"courses"`
	FAFSAEnabled bool            `json:"fafsa_enabled"`
}
