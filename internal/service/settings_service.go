package service

import (
	"context"
	"strconv"

	apperrors "studytrack/internal/errors"
	"studytrack/internal/model"
	"studytrack/internal/repository"
)

// SettingsService is the typed administrative surface over the string
// settings store.
type SettingsService struct {
	settings *repository.SettingsRepository
}

type SyncConfig struct {
	SyncURL string `json:"sync_url"`
	UserID  string `json:"user_id"`
}

type AutoSyncConfig struct {
	AutoSyncEnabled  bool  `json:"auto_sync_enabled"`
	AutoSyncInterval int64 `json:"auto_sync_interval"`
	SyncOnPause      bool  `json:"sync_on_pause"`
}

func NewSettingsService(settings *repository.SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

func (s *SettingsService) DailyGoal(ctx context.Context) (int64, *apperrors.APIError) {
	goal, err := s.settings.DailyGoal(ctx)
	if err != nil {
		return 0, apperrors.Internal("failed to read daily goal")
	}
	return goal, nil
}

func (s *SettingsService) SetDailyGoal(ctx context.Context, seconds int64) *apperrors.APIError {
	if seconds <= 0 {
		return apperrors.BadRequest("invalid_goal", "daily goal must be positive seconds")
	}
	if err := s.settings.SetDailyGoal(ctx, seconds); err != nil {
		return apperrors.Internal("failed to store daily goal")
	}
	return nil
}

// ExamDate returns the stored exam date, empty when none is set.
func (s *SettingsService) ExamDate(ctx context.Context) (string, *apperrors.APIError) {
	date, err := s.settings.Get(ctx, model.SettingExamDate)
	if err == repository.ErrNotFound {
		return "", nil
	}
	if err != nil {
		return "", apperrors.Internal("failed to read exam date")
	}
	return date, nil
}

func (s *SettingsService) SetExamDate(ctx context.Context, date string) *apperrors.APIError {
	if err := s.settings.Set(ctx, model.SettingExamDate, date); err != nil {
		return apperrors.Internal("failed to store exam date")
	}
	return nil
}

func (s *SettingsService) SyncConfig(ctx context.Context) (*SyncConfig, *apperrors.APIError) {
	syncURL, err := s.settings.Get(ctx, model.SettingSyncURL)
	if err != nil && err != repository.ErrNotFound {
		return nil, apperrors.Internal("failed to read sync config")
	}
	userID, err := s.settings.Get(ctx, model.SettingUserID)
	if err != nil && err != repository.ErrNotFound {
		return nil, apperrors.Internal("failed to read sync config")
	}
	return &SyncConfig{SyncURL: syncURL, UserID: userID}, nil
}

func (s *SettingsService) SetSyncConfig(ctx context.Context, cfg SyncConfig) *apperrors.APIError {
	if err := s.settings.Set(ctx, model.SettingSyncURL, cfg.SyncURL); err != nil {
		return apperrors.Internal("failed to store sync config")
	}
	if err := s.settings.Set(ctx, model.SettingUserID, cfg.UserID); err != nil {
		return apperrors.Internal("failed to store sync config")
	}
	return nil
}

func (s *SettingsService) AutoSyncConfig(ctx context.Context) (*AutoSyncConfig, *apperrors.APIError) {
	enabled, err := s.settings.GetBool(ctx, model.SettingAutoSyncEnabled, false)
	if err != nil {
		return nil, apperrors.Internal("failed to read auto-sync config")
	}
	interval, err := s.settings.GetInt64(ctx, model.SettingAutoSyncInterval, model.DefaultAutoSyncIntervalSeconds)
	if err != nil {
		return nil, apperrors.Internal("failed to read auto-sync config")
	}
	onPause, err := s.settings.SyncOnPause(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to read auto-sync config")
	}
	return &AutoSyncConfig{
		AutoSyncEnabled:  enabled,
		AutoSyncInterval: interval,
		SyncOnPause:      onPause,
	}, nil
}

func (s *SettingsService) SetAutoSyncConfig(ctx context.Context, cfg AutoSyncConfig) *apperrors.APIError {
	if cfg.AutoSyncInterval <= 0 {
		return apperrors.BadRequest("invalid_interval", "auto-sync interval must be positive seconds")
	}
	if err := s.settings.SetBool(ctx, model.SettingAutoSyncEnabled, cfg.AutoSyncEnabled); err != nil {
		return apperrors.Internal("failed to store auto-sync config")
	}
	if err := s.settings.Set(ctx, model.SettingAutoSyncInterval, strconv.FormatInt(cfg.AutoSyncInterval, 10)); err != nil {
		return apperrors.Internal("failed to store auto-sync config")
	}
	if err := s.settings.SetBool(ctx, model.SettingSyncOnPause, cfg.SyncOnPause); err != nil {
		return apperrors.Internal("failed to store auto-sync config")
	}
	return nil
}

func (s *SettingsService) NotificationsEnabled(ctx context.Context) (bool, *apperrors.APIError) {
	enabled, err := s.settings.NotificationsEnabled(ctx)
	if err != nil {
		return false, apperrors.Internal("failed to read notifications setting")
	}
	return enabled, nil
}

func (s *SettingsService) SetNotificationsEnabled(ctx context.Context, enabled bool) *apperrors.APIError {
	if err := s.settings.SetBool(ctx, model.SettingNotificationsEnabled, enabled); err != nil {
		return apperrors.Internal("failed to store notifications setting")
	}
	return nil
}
