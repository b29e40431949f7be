package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beautyschool/calculator/core"
	"github.com/beautyschool/calculator/core/course"
	"github.com/beautyschool/calculator/storage/database"
)

// NewConfig returns a test config backed by a SQLite file in a temporary dir.
func NewConfig(t *testing.T) *core.Config {
	conf := core.NewTestConfig()
	conf.Database.Path = filepath.Join(t.TempDir(), "test.db")
	return conf
}

// PrepareDB creates & migrates a fresh database, closed when the test ends.
func PrepareDB(t *testing.T) *sqlx.DB {
	db, err := database.Setup(NewConfig(t))
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("db.Close() failed: %v", err)
		}
	})
	return db
}

// SaveCourses stores `courses` with the FAFSA calculator enabled.
func SaveCourses(t *testing.T, repo course.Repository, courses ...course.Course) course.Settings {
	settings := course.Settings{Courses: course.NewCatalog(courses...), FAFSAEnabled: true}
	if err := repo.SaveSettings(context.Background(), settings); err != nil {
		t.Fatalf("SaveCourses() failed: %v", err)
	}
	return settings
}

// TestSettingsRepository checks the behaviour every course.Repository must share.
func TestSettingsRepository(t *testing.T, newRepo func(t *testing.T) course.Repository) {
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		repo := newRepo(t)

		settings, err := repo.GetSettings(ctx)
		require.NoError(t, err)
		assert.NotNil(t, settings.Courses)
		assert.Empty(t, settings.Courses)
		assert.True(t, settings.FAFSAEnabled)
		assert.Empty(t, settings.Version)
	})

	t.Run("save & get", func(t *testing.T) {
		repo := newRepo(t)
		defaults := course.DefaultSettings()
		defaults.FAFSAEnabled = false

		require.NoError(t, repo.SaveSettings(ctx, defaults))

		settings, err := repo.GetSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, defaults.Courses, settings.Courses)
		assert.False(t, settings.FAFSAEnabled)
	})

	t.Run("save replaces the catalog", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.SaveSettings(ctx, course.DefaultSettings()))

		nails := course.Course{Key: "nails", Name: "Nail Technology", Price: 3000, Hours: 300, OtherLabel: course.DefaultOtherLabel}
		SaveCourses(t, repo, nails)

		settings, err := repo.GetSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, course.NewCatalog(nails), settings.Courses)
		assert.True(t, settings.FAFSAEnabled)
	})

	t.Run("add defaults", func(t *testing.T) {
		repo := newRepo(t)
		defaults := course.DefaultSettings()
		defaults.Version = "1.0.0"

		require.NoError(t, repo.AddDefaultSettings(ctx, defaults))

		settings, err := repo.GetSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, defaults.Courses, settings.Courses)
		assert.True(t, settings.FAFSAEnabled)
		assert.Equal(t, "1.0.0", settings.Version)
	})

	t.Run("add defaults keeps saved settings", func(t *testing.T) {
		repo := newRepo(t)
		nails := course.Course{Key: "nails", Name: "Nail Technology", Price: 3000, OtherLabel: course.DefaultOtherLabel}
		require.NoError(t, repo.SaveSettings(ctx, course.Settings{Courses: course.NewCatalog(nails), FAFSAEnabled: false}))

		defaults := course.DefaultSettings()
		defaults.Version = "1.0.0"
		require.NoError(t, repo.AddDefaultSettings(ctx, defaults))

		settings, err := repo.GetSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, course.NewCatalog(nails), settings.Courses)
		assert.False(t, settings.FAFSAEnabled)
		assert.Equal(t, "1.0.0", settings.Version)
	})
}
