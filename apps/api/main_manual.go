package main

import (
	"context"
	"expvar"
	"fmt"

	"github.com/go-playground/validator/v10"

	echoapi "github.com/beautyschool/calculator/apps/api/echo"
	"github.com/beautyschool/calculator/core"
	"github.com/beautyschool/calculator/core/course"
	logsvc "github.com/beautyschool/calculator/services/logger"
	rediscache "github.com/beautyschool/calculator/storage/cache/redis"
	"github.com/beautyschool/calculator/storage/database"
	sqlxrepos "github.com/beautyschool/calculator/storage/database/sqlx"
)

func startManual(conf *core.Config) {
	// =========================================================================
	// Set up Dependencies

	// set up loggers
	logger := logsvc.NewRollbarLogger(logsvc.NewZapLogger("API", conf.Debug), conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	defer logger.Sync()

	dbLogger := logsvc.NewRollbarLogger(logsvc.NewZapLogger("DB", conf.Debug), conf)

	// set up DB
	db, err := database.Setup(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()

	// set up cache
	var cache course.Cache
	if conf.CacheEnabled {
		cache = course.NewMemoryCache(conf.CacheTTL)
		if conf.Redis.Addr != "" {
			client, err := rediscache.NewClient(context.Background(), conf)
			if err != nil {
				logger.Warn(fmt.Sprintf("redis unavailable, caching in memory: %v", err), err)
			} else {
				defer func() { _ = client.Close() }()
				cache = rediscache.NewSettingsCache(client, conf.Redis.TTL)
			}
		}
	}

	// set up services
	courseSvc := course.NewService(sqlxrepos.NewSettingsRepository(db), cache, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			CourseSvc:  courseSvc,
			Validate:   validate,
			Translator: translator,
		},
	)

	expvar.NewString("di").Set("manual")
	serve(conf, logger, server)
}
