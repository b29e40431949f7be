package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/beautyschool/calculator/core/course"
)

// option names
const (
	optCourses      = "courses"
	optFAFSAEnabled = "fafsa_enabled"
	optVersion      = "version"
)

var (
	upsertOptionQuery = `INSERT INTO options (name, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	addOptionQuery = `INSERT INTO options (name, value) VALUES (?, ?) ON CONFLICT (name) DO NOTHING`
)

type option struct {
	Name  string `db:"name"`
	Value string `db:"value"`
}

type settingsRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*settingsRepository)(nil) // interface compliance check

func NewSettingsRepository(db *sqlx.DB) course.Repository {
	return &settingsRepository{db: db}
}

func (repo settingsRepository) GetSettings(ctx context.Context) (course.Settings, error) {
	q, args, err := sqlx.In("SELECT name, value FROM options WHERE name IN (?)", []string{optCourses, optFAFSAEnabled, optVersion})
	if err != nil {
		return course.Settings{}, errors.Wrap(err, "building options query")
	}

	var opts []option
	if err = repo.db.SelectContext(ctx, &opts, repo.db.Rebind(q), args...); err != nil {
		return course.Settings{}, errors.Wrap(err, "selecting options")
	}

	settings := course.Settings{
		Courses:      make(course.Catalog),
		FAFSAEnabled: true,
	}
	for _, opt := range opts {
		switch opt.Name {
		case optCourses:
			if err = json.Unmarshal([]byte(opt.Value), &settings.Courses); err != nil {
				return course.Settings{}, errors.Wrap(err, "decoding courses")
			}
		case optFAFSAEnabled:
			settings.FAFSAEnabled = opt.Value == "1"
		case optVersion:
			settings.Version = opt.Value
		}
	}
	return settings, nil
}

func (repo settingsRepository) SaveSettings(ctx context.Context, settings course.Settings) error {
	opts, err := settingsOptions(settings)
	if err != nil {
		return err
	}
	return repo.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, opt := range opts {
			if _, err := tx.ExecContext(ctx, tx.Rebind(upsertOptionQuery), opt.Name, opt.Value); err != nil {
				return errors.Wrapf(err, "saving option %q", opt.Name)
			}
		}
		return nil
	})
}

func (repo settingsRepository) AddDefaultSettings(ctx context.Context, settings course.Settings) error {
	opts, err := settingsOptions(settings)
	if err != nil {
		return err
	}
	opts = append(opts, option{Name: optVersion, Value: settings.Version})

	return repo.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, opt := range opts {
			if _, err := tx.ExecContext(ctx, tx.Rebind(addOptionQuery), opt.Name, opt.Value); err != nil {
				return errors.Wrapf(err, "adding option %q", opt.Name)
			}
		}
		return nil
	})
}

func (repo settingsRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return errors.Wrapf(err, "rolling back: %v", rbErr)
		}
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

// settingsOptions encodes the courses & FAFSA flag as option rows.
func settingsOptions(settings course.Settings) ([]option, error) {
	courses := settings.Courses
	if courses == nil {
		courses = make(course.Catalog)
	}
	data, err := json.Marshal(courses)
	if err != nil {
		return nil, errors.Wrap(err, "encoding courses")
	}

	enabled := "0"
	if settings.FAFSAEnabled {
		enabled = "1"
	}
	return []option{
		{Name: optCourses, Value: string(data)},
		{Name: optFAFSAEnabled, Value: enabled},
	}, nil
}
