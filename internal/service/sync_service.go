package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "studytrack/internal/errors"
	"studytrack/internal/metrics"
	"studytrack/internal/model"
	"studytrack/internal/repository"
)

// ErrSyncNotConfigured means sync_url or user_id is missing; a push without
// them is a no-op, not a failure.
var ErrSyncNotConfigured = errors.New("sync not configured")

// SyncService exports the local store and pushes it to the cloud API. Pushes
// happen on an auto-sync timer and on the pause-triggered signal; both are
// best effort and never fatal.
type SyncService struct {
	courses  *repository.CourseRepository
	logs     *repository.StudyLogRepository
	settings *repository.SettingsRepository

	signal       *SyncSignal
	client       *http.Client
	pollInterval time.Duration
	logger       zerolog.Logger
}

func NewSyncService(
	courses *repository.CourseRepository,
	logs *repository.StudyLogRepository,
	settings *repository.SettingsRepository,
	signal *SyncSignal,
	pollInterval time.Duration,
	logger zerolog.Logger,
) *SyncService {
	return &SyncService{
		courses:      courses,
		logs:         logs,
		settings:     settings,
		signal:       signal,
		client:       &http.Client{Timeout: 15 * time.Second},
		pollInterval: pollInterval,
		logger:       logger.With().Str("component", "sync").Logger(),
	}
}

// ExportData builds the full sync payload for the administrative export
// operation. UserID is left empty; Push fills it from settings.
func (s *SyncService) ExportData(ctx context.Context) (*model.SyncPayload, *apperrors.APIError) {
	payload, err := s.buildPayload(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to build sync payload")
	}
	return payload, nil
}

// Push sends the full payload to <sync_url>/api/sync.
func (s *SyncService) Push(ctx context.Context) error {
	syncURL, err := s.settings.Get(ctx, model.SettingSyncURL)
	if err != nil && err != repository.ErrNotFound {
		return err
	}
	userID, err := s.settings.Get(ctx, model.SettingUserID)
	if err != nil && err != repository.ErrNotFound {
		return err
	}
	if syncURL == "" || userID == "" {
		return ErrSyncNotConfigured
	}

	payload, err := s.buildPayload(ctx)
	if err != nil {
		return err
	}
	payload.UserID = userID

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal sync payload: %w", err)
	}

	endpoint := strings.TrimRight(syncURL, "/") + "/api/sync"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.SyncPushesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("push sync payload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.SyncPushesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("push sync payload: unexpected status %d", resp.StatusCode)
	}

	metrics.SyncPushesTotal.WithLabelValues("ok").Inc()
	s.logger.Info().
		Int("courses", len(payload.Courses)).
		Int("study_logs", len(payload.StudyLogs)).
		Msg("sync payload pushed")
	return nil
}

// Run polls the pause-triggered signal and drives the auto-sync timer. Runs
// for the process lifetime.
func (s *SyncService) Run() {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	lastPush := time.Now()
	for range ticker.C {
		ctx := context.Background()

		if s.signal.Consume() {
			s.pushLogged(ctx, "pause")
			lastPush = time.Now()
			continue
		}

		enabled, err := s.settings.GetBool(ctx, model.SettingAutoSyncEnabled, false)
		if err != nil || !enabled {
			continue
		}
		interval, err := s.settings.GetInt64(ctx, model.SettingAutoSyncInterval, model.DefaultAutoSyncIntervalSeconds)
		if err != nil {
			continue
		}
		if time.Since(lastPush) >= time.Duration(interval)*time.Second {
			s.pushLogged(ctx, "auto")
			lastPush = time.Now()
		}
	}
}

func (s *SyncService) pushLogged(ctx context.Context, trigger string) {
	err := s.Push(ctx)
	if err == nil {
		return
	}
	if errors.Is(err, ErrSyncNotConfigured) {
		s.logger.Debug().Str("trigger", trigger).Msg("sync skipped, not configured")
		return
	}
	s.logger.Error().Err(err).Str("trigger", trigger).Msg("sync push failed")
}

func (s *SyncService) buildPayload(ctx context.Context) (*model.SyncPayload, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := s.logs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	dailyGoal, err := s.settings.DailyGoal(ctx)
	if err != nil {
		return nil, err
	}
	examDate, err := s.settings.Get(ctx, model.SettingExamDate)
	if err != nil && err != repository.ErrNotFound {
		return nil, err
	}

	return &model.SyncPayload{
		Courses:   courses,
		StudyLogs: logs,
		Settings: model.SyncSettings{
			DailyGoal: dailyGoal,
			ExamDate:  examDate,
		},
	}, nil
}
