package course

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/beautyschool/calculator/core"
)

type (
	// Repository is the persisted settings store.
	// A store holding no settings yet reports an empty catalog with FAFSA enabled.
	Repository interface {
		GetSettings(ctx context.Context) (Settings, error)
		SaveSettings(ctx context.Context, settings Settings) error
		// AddDefaultSettings stores each of courses, FAFSA flag & version only if it was never saved before.
		AddDefaultSettings(ctx context.Context, settings Settings) error
	}

	// Cache holds a Settings snapshot in front of the Repository.
	Cache interface {
		Get(ctx context.Context) (settings Settings, found bool, err error)
		Set(ctx context.Context, settings Settings) error
		Invalidate(ctx context.Context) error
	}

	Service struct {
		repo   Repository
		cache  Cache
		logger core.Logger
	}
)

// NewService returns a settings Service. cache may be nil to always read through to repo.
func NewService(repo Repository, cache Cache, logger core.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// Settings returns the current settings, loading them once into the cache.
// Cache failures are logged and fall back to the Repository.
func (svc *Service) Settings(ctx context.Context) (Settings, error) {
	if svc.cache != nil {
		settings, found, err := svc.cache.Get(ctx)
		if err != nil {
			svc.logger.Warn(fmt.Sprintf("reading settings cache: %v", err), err)
		} else if found {
			return settings, nil
		}
	}

	settings, err := svc.repo.GetSettings(ctx)
	if err != nil {
		return Settings{}, errors.Wrap(err, "getting settings")
	}

	if svc.cache != nil {
		if err = svc.cache.Set(ctx, settings); err != nil {
			svc.logger.Warn(fmt.Sprintf("writing settings cache: %v", err), err)
		}
	}
	return settings, nil
}

// Courses returns the course catalog snapshot.
func (svc *Service) Courses(ctx context.Context) (Catalog, error) {
	settings, err := svc.Settings(ctx)
	if err != nil {
		return nil, err
	}
	return settings.Courses, nil
}

// FAFSAEnabled reports whether the financial aid calculator is offered.
func (svc *Service) FAFSAEnabled(ctx context.Context) (bool, error) {
	settings, err := svc.Settings(ctx)
	if err != nil {
		return false, err
	}
	return settings.FAFSAEnabled, nil
}

// Save replaces the settings with an already validated update.
func (svc *Service) Save(ctx context.Context, us UpdateSettings) (Settings, error) {
	if err := svc.repo.SaveSettings(ctx, us.Settings()); err != nil {
		return Settings{}, errors.Wrap(err, "saving settings")
	}
	svc.invalidate(ctx)
	return svc.Settings(ctx)
}

// SetFAFSAEnabled toggles the financial aid calculator, keeping the catalog as is.
func (svc *Service) SetFAFSAEnabled(ctx context.Context, enabled bool) (Settings, error) {
	settings, err := svc.repo.GetSettings(ctx)
	if err != nil {
		return Settings{}, errors.Wrap(err, "getting settings")
	}
	settings.FAFSAEnabled = enabled
	if err = svc.repo.SaveSettings(ctx, settings); err != nil {
		return Settings{}, errors.Wrap(err, "saving settings")
	}
	svc.invalidate(ctx)
	return settings, nil
}

// Activate seeds the default settings without overwriting existing ones.
func (svc *Service) Activate(ctx context.Context, version string) error {
	defaults := DefaultSettings()
	defaults.Version = version
	if err := svc.repo.AddDefaultSettings(ctx, defaults); err != nil {
		return errors.Wrap(err, "adding default settings")
	}
	svc.invalidate(ctx)
	return nil
}

func (svc *Service) invalidate(ctx context.Context) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.Invalidate(ctx); err != nil {
		svc.logger.Error(fmt.Sprintf("invalidating settings cache: %v", err), err)
	}
}
