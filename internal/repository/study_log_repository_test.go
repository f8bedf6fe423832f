package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studytrack/internal/db"
	"studytrack/internal/model"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.Close()
	})

	_, currentFile, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")
	require.NoError(t, db.RunMigrations(database, migrationsDir))
	return database
}

func TestAddDurationAccumulatesIntoSingleRow(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	courses := NewCourseRepository(database)
	logs := NewStudyLogRepository(database)

	course, err := courses.Create(ctx, "Math", "STEM", "*math*")
	require.NoError(t, err)

	committed, err := logs.AddDuration(ctx, course.ID, "2024-01-01", 60)
	require.NoError(t, err)
	assert.True(t, committed)

	committed, err = logs.AddDuration(ctx, course.ID, "2024-01-01", 40)
	require.NoError(t, err)
	assert.True(t, committed)

	rows, err := logs.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(100), rows[0].Duration)
	assert.Equal(t, course.ID, rows[0].CourseID)
	assert.Equal(t, "2024-01-01", rows[0].Date)

	// A different day gets its own row.
	_, err = logs.AddDuration(ctx, course.ID, "2024-01-02", 10)
	require.NoError(t, err)
	rows, err = logs.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestAddDurationDropsUnknownCourse(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	logs := NewStudyLogRepository(database)

	committed, err := logs.AddDuration(ctx, "no-such-course", "2024-01-01", 60)
	require.NoError(t, err)
	assert.False(t, committed)

	rows, err := logs.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDeleteCourseRemovesItsLogs(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	courses := NewCourseRepository(database)
	logs := NewStudyLogRepository(database)

	keep, err := courses.Create(ctx, "English", "Lang", "*english*")
	require.NoError(t, err)
	doomed, err := courses.Create(ctx, "Math", "STEM", "*math*")
	require.NoError(t, err)

	_, err = logs.AddDuration(ctx, keep.ID, "2024-01-01", 30)
	require.NoError(t, err)
	_, err = logs.AddDuration(ctx, doomed.ID, "2024-01-01", 30)
	require.NoError(t, err)

	require.NoError(t, courses.Delete(ctx, doomed.ID))

	_, err = courses.GetByID(ctx, doomed.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	rows, err := logs.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, keep.ID, rows[0].CourseID)
}

func TestDeleteMissingCourse(t *testing.T) {
	database := newTestDB(t)
	courses := NewCourseRepository(database)

	err := courses.Delete(context.Background(), "no-such-course")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateMissingCourse(t *testing.T) {
	database := newTestDB(t)
	courses := NewCourseRepository(database)

	err := courses.Update(context.Background(), &model.Course{ID: "no-such-course", Name: "X", Subject: "Y"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSettingsDefaults(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	settings := NewSettingsRepository(database)

	goal, err := settings.DailyGoal(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(model.DefaultDailyGoalSeconds), goal)

	interval, err := settings.GetInt64(ctx, model.SettingAutoSyncInterval, model.DefaultAutoSyncIntervalSeconds)
	require.NoError(t, err)
	assert.Equal(t, int64(model.DefaultAutoSyncIntervalSeconds), interval)

	enabled, err := settings.NotificationsEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)

	onPause, err := settings.SyncOnPause(ctx)
	require.NoError(t, err)
	assert.False(t, onPause)
}

func TestSettingsFallbackOnUnparseableValue(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	settings := NewSettingsRepository(database)

	require.NoError(t, settings.Set(ctx, model.SettingDailyGoal, "not-a-number"))
	goal, err := settings.DailyGoal(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(model.DefaultDailyGoalSeconds), goal)

	// Anything other than the literal "true" reads as false.
	require.NoError(t, settings.Set(ctx, model.SettingNotificationsEnabled, "yes"))
	enabled, err := settings.NotificationsEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestSettingsRoundTrip(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	settings := NewSettingsRepository(database)

	require.NoError(t, settings.SetDailyGoal(ctx, 3600))
	goal, err := settings.DailyGoal(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), goal)

	require.NoError(t, settings.SetBool(ctx, model.SettingSyncOnPause, true))
	onPause, err := settings.SyncOnPause(ctx)
	require.NoError(t, err)
	assert.True(t, onPause)

	_, err = settings.Get(ctx, "missing-key")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, settings.Set(ctx, model.SettingExamDate, "2024-06-07"))
	require.NoError(t, settings.Delete(ctx, model.SettingExamDate))
	_, err = settings.Get(ctx, model.SettingExamDate)
	assert.ErrorIs(t, err, ErrNotFound)
}
