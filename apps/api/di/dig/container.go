package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	echoapi "github.com/beautyschool/calculator/apps/api/echo"
	"github.com/beautyschool/calculator/core"
	"github.com/beautyschool/calculator/core/course"
	logsvc "github.com/beautyschool/calculator/services/logger"
	rediscache "github.com/beautyschool/calculator/storage/cache/redis"
	"github.com/beautyschool/calculator/storage/database"
	sqlxrepos "github.com/beautyschool/calculator/storage/database/sqlx"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

func newLogger(conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(logsvc.NewZapLogger("API", conf.Debug), conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(logsvc.NewZapLogger("DB", conf.Debug), conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	return logger
}

func newDB(conf *core.Config, loggerParam DBLoggerParam) *sqlx.DB {
	db, err := database.Setup(conf)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return db
}

// newRedisClient returns nil when Redis is not configured or not reachable.
func newRedisClient(conf *core.Config, logger core.Logger) (*redis.Client, error) {
	if !conf.CacheEnabled || conf.Redis.Addr == "" {
		return nil, nil
	}
	client, err := rediscache.NewClient(context.Background(), conf)
	if err != nil {
		logger.Warn(fmt.Sprintf("redis unavailable, caching in memory: %v", err), err)
		return nil, nil
	}
	return client, nil
}

func newCache(conf *core.Config, client *redis.Client) course.Cache {
	switch {
	case !conf.CacheEnabled:
		return nil
	case client != nil:
		return rediscache.NewSettingsCache(client, conf.Redis.TTL)
	default:
		return course.NewMemoryCache(conf.CacheTTL)
	}
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate
}

func newServer(
	conf *core.Config,
	logger core.Logger,
	courseSvc *course.Service,
	validate *validator.Validate,
	translator ut.Translator,
) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:       conf,
		Logger:     logger,
		CourseSvc:  courseSvc,
		Validate:   validate,
		Translator: translator,
	})
}

// New returns a new dependency injection dig.Container
func New(conf *core.Config) *dig.Container {
	c := dig.New()

	must(c.Provide(func() *core.Config { return conf }))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(newRedisClient))
	must(c.Provide(newCache))
	must(c.Provide(sqlxrepos.NewSettingsRepository))
	must(c.Provide(course.NewService))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(newServer))

	if conf.Debug {
		_ = dig.Visualize(c, os.Stdout)
	}

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
