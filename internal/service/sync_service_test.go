package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studytrack/internal/db"
	"studytrack/internal/model"
	"studytrack/internal/repository"
)

type syncFixture struct {
	sync     *SyncService
	courses  *repository.CourseRepository
	logs     *repository.StudyLogRepository
	settings *repository.SettingsRepository
}

func newSyncFixture(t *testing.T) *syncFixture {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.Close()
	})

	_, currentFile, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")
	require.NoError(t, db.RunMigrations(database, migrationsDir))

	courses := repository.NewCourseRepository(database)
	logs := repository.NewStudyLogRepository(database)
	settings := repository.NewSettingsRepository(database)
	return &syncFixture{
		sync:     NewSyncService(courses, logs, settings, NewSyncSignal(), time.Second, zerolog.Nop()),
		courses:  courses,
		logs:     logs,
		settings: settings,
	}
}

func TestExportDataShape(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()

	course, err := f.courses.Create(ctx, "Math", "STEM", "*math*")
	require.NoError(t, err)
	_, err = f.logs.AddDuration(ctx, course.ID, "2024-01-01", 600)
	require.NoError(t, err)
	require.NoError(t, f.settings.Set(ctx, model.SettingExamDate, "2024-06-07"))

	payload, apiErr := f.sync.ExportData(ctx)
	require.Nil(t, apiErr)

	assert.Empty(t, payload.UserID)
	require.Len(t, payload.Courses, 1)
	assert.Equal(t, course.ID, payload.Courses[0].ID)
	require.Len(t, payload.StudyLogs, 1)
	assert.Equal(t, int64(600), payload.StudyLogs[0].Duration)
	assert.Equal(t, int64(model.DefaultDailyGoalSeconds), payload.Settings.DailyGoal)
	assert.Equal(t, "2024-06-07", payload.Settings.ExamDate)
}

func TestPushNotConfigured(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()

	err := f.sync.Push(ctx)
	assert.ErrorIs(t, err, ErrSyncNotConfigured)

	// Only one of the two keys set is still unconfigured.
	require.NoError(t, f.settings.Set(ctx, model.SettingSyncURL, "http://example.invalid"))
	err = f.sync.Push(ctx)
	assert.ErrorIs(t, err, ErrSyncNotConfigured)
}

func TestPushSendsPayloadToSyncEndpoint(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()

	course, err := f.courses.Create(ctx, "Math", "STEM", "*math*")
	require.NoError(t, err)
	_, err = f.logs.AddDuration(ctx, course.ID, "2024-01-01", 600)
	require.NoError(t, err)

	var gotPath string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	require.NoError(t, f.settings.Set(ctx, model.SettingSyncURL, server.URL+"/"))
	require.NoError(t, f.settings.Set(ctx, model.SettingUserID, "user-42"))

	require.NoError(t, f.sync.Push(ctx))

	assert.Equal(t, "/api/sync", gotPath)

	var payload model.SyncPayload
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, "user-42", payload.UserID)
	require.Len(t, payload.Courses, 1)
	assert.Equal(t, course.ID, payload.Courses[0].ID)
	assert.Equal(t, int64(model.DefaultDailyGoalSeconds), payload.Settings.DailyGoal)
}

func TestPushReportsServerError(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	require.NoError(t, f.settings.Set(ctx, model.SettingSyncURL, server.URL))
	require.NoError(t, f.settings.Set(ctx, model.SettingUserID, "user-42"))

	err := f.sync.Push(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSyncNotConfigured)
}

func TestSyncSignalSwapAndClear(t *testing.T) {
	signal := NewSyncSignal()
	assert.False(t, signal.Consume())

	signal.Raise()
	signal.Raise()
	assert.True(t, signal.Consume())
	assert.False(t, signal.Consume(), "consume clears the flag")
}
