// Package rediscache shares the settings snapshot between API instances.
package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/beautyschool/calculator/core"
	"github.com/beautyschool/calculator/core/course"
)

const settingsKey = "bscalc:settings"

type settingsCache struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

var _ course.Cache = (*settingsCache)(nil)

// NewClient connects to the configured Redis server.
func NewClient(ctx context.Context, conf *core.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "pinging redis")
	}
	return client, nil
}

// NewSettingsCache returns a course.Cache storing the settings as JSON under a single key.
// A zero ttl keeps the snapshot until it is invalidated.
func NewSettingsCache(client redis.Cmdable, ttl time.Duration) course.Cache {
	return &settingsCache{client: client, key: settingsKey, ttl: ttl}
}

func (c *settingsCache) Get(ctx context.Context) (course.Settings, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err == redis.Nil {
		return course.Settings{}, false, nil
	}
	if err != nil {
		return course.Settings{}, false, errors.Wrap(err, "getting settings")
	}

	var settings course.Settings
	if err = json.Unmarshal(data, &settings); err != nil {
		return course.Settings{}, false, errors.Wrap(err, "decoding settings")
	}
	if settings.Courses == nil {
		settings.Courses = make(course.Catalog)
	}
	return settings, true, nil
}

func (c *settingsCache) Set(ctx context.Context, settings course.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return errors.Wrap(err, "encoding settings")
	}
	return errors.Wrap(c.client.Set(ctx, c.key, data, c.ttl).Err(), "setting settings")
}

func (c *settingsCache) Invalidate(ctx context.Context) error {
	return errors.Wrap(c.client.Del(ctx, c.key).Err(), "deleting settings")
}
