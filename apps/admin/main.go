package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/beautyschool/calculator/core"
	"github.com/beautyschool/calculator/core/course"
	logsvc "github.com/beautyschool/calculator/services/logger"
	rediscache "github.com/beautyschool/calculator/storage/cache/redis"
	"github.com/beautyschool/calculator/storage/database"
	sqlxrepos "github.com/beautyschool/calculator/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(logsvc.NewZapLogger("ADMIN", conf.Debug), conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")

	// set up DB
	if err := database.CreateIfNotExist(conf); err != nil {
		logger.Fatal(fmt.Sprintf("creating database: %v", err), err)
	}
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}
	defer func() { _ = db.Close() }()

	// saved settings must reach the API instances sharing the Redis cache
	var cache course.Cache
	if conf.CacheEnabled && conf.Redis.Addr != "" {
		client, err := rediscache.NewClient(context.Background(), conf)
		if err != nil {
			logger.Warn(fmt.Sprintf("redis unavailable, the API cache is not invalidated: %v", err), err)
		} else {
			defer func() { _ = client.Close() }()
			cache = rediscache.NewSettingsCache(client, conf.Redis.TTL)
		}
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		db:         db,
		conf:       conf,
		courseSvc:  course.NewService(sqlxrepos.NewSettingsRepository(db), cache, logger),
		validate:   validate,
		translator: translator,
		out:        os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			_, _ = fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}
