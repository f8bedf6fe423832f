package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"studytrack/internal/model"
)

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(
		ctx,
		`SELECT value FROM settings WHERE key = ?`,
		key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, nil
}

func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`,
		key,
		value,
	)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

func (r *SettingsRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	return nil
}

// GetInt64 parses the stored value, falling back to the default when the key
// is absent or unparseable.
func (r *SettingsRepository) GetInt64(ctx context.Context, key string, fallback int64) (int64, error) {
	raw, err := r.Get(ctx, key)
	if err == ErrNotFound {
		return fallback, nil
	}
	if err != nil {
		return fallback, err
	}

	parsed, parseErr := strconv.ParseInt(raw, 10, 64)
	if parseErr != nil {
		return fallback, nil
	}
	return parsed, nil
}

// GetBool treats the literal "true" as true, as the desktop settings store
// always wrote it.
func (r *SettingsRepository) GetBool(ctx context.Context, key string, fallback bool) (bool, error) {
	raw, err := r.Get(ctx, key)
	if err == ErrNotFound {
		return fallback, nil
	}
	if err != nil {
		return fallback, err
	}
	return raw == "true", nil
}

func (r *SettingsRepository) SetBool(ctx context.Context, key string, value bool) error {
	raw := "false"
	if value {
		raw = "true"
	}
	return r.Set(ctx, key, raw)
}

func (r *SettingsRepository) DailyGoal(ctx context.Context) (int64, error) {
	return r.GetInt64(ctx, model.SettingDailyGoal, model.DefaultDailyGoalSeconds)
}

func (r *SettingsRepository) SetDailyGoal(ctx context.Context, seconds int64) error {
	return r.Set(ctx, model.SettingDailyGoal, strconv.FormatInt(seconds, 10))
}

func (r *SettingsRepository) NotificationsEnabled(ctx context.Context) (bool, error) {
	return r.GetBool(ctx, model.SettingNotificationsEnabled, true)
}

func (r *SettingsRepository) SyncOnPause(ctx context.Context) (bool, error) {
	return r.GetBool(ctx, model.SettingSyncOnPause, false)
}
