package main

import (
	"expvar"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	dig_container "github.com/beautyschool/calculator/apps/api/di/dig"
	echoapi "github.com/beautyschool/calculator/apps/api/echo"
	"github.com/beautyschool/calculator/core"
)

func startWithDig(conf *core.Config) {
	c := dig_container.New(conf)

	must(c.Invoke(func(
		apiLogger core.Logger,
		dbLoggerParam dig_container.DBLoggerParam,
		db *sqlx.DB,
		redisClient *redis.Client,
		server *echoapi.Server,
	) {
		apiLogger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))

		dbLogger := dbLoggerParam.Logger
		defer func() {
			if err := db.Close(); err != nil {
				dbLogger.Fatal("Failed to close", err)
			}
		}()
		if redisClient != nil {
			defer func() { _ = redisClient.Close() }()
		}
		defer apiLogger.Info("Application stopped")

		expvar.NewString("di").Set("dig")
		serve(conf, apiLogger, server)
	}))
}
