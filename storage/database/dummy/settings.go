package dummydb

import (
	"context"

	"github.com/beautyschool/calculator/core/course"
)

type settingsRepository struct {
	db *optionTable
}

var _ course.Repository = (*settingsRepository)(nil) // interface compliance check

func NewSettingsRepository(db *DB) course.Repository {
	return &settingsRepository{db: db.options}
}

func (repo *settingsRepository) GetSettings(_ context.Context) (course.Settings, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	settings := course.Settings{
		Courses:      repo.db.courses.Clone(),
		FAFSAEnabled: true,
		Version:      repo.db.version,
	}
	if settings.Courses == nil {
		settings.Courses = make(course.Catalog)
	}
	if repo.db.fafsaEnabled != nil {
		settings.FAFSAEnabled = *repo.db.fafsaEnabled
	}
	return settings, nil
}

func (repo *settingsRepository) SaveSettings(_ context.Context, settings course.Settings) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	courses := settings.Courses.Clone()
	if courses == nil {
		courses = make(course.Catalog)
	}
	enabled := settings.FAFSAEnabled
	repo.db.courses = courses
	repo.db.fafsaEnabled = &enabled
	return nil
}

func (repo *settingsRepository) AddDefaultSettings(_ context.Context, settings course.Settings) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if repo.db.courses == nil {
		repo.db.courses = settings.Courses.Clone()
	}
	if repo.db.fafsaEnabled == nil {
		enabled := settings.FAFSAEnabled
		repo.db.fafsaEnabled = &enabled
	}
	if repo.db.version == "" {
		repo.db.version = settings.Version
	}
	return nil
}
