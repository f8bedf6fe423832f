package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr             string
	DBPath           string
	MigrationsDir    string
	CORSOrigins      []string
	JWTSecret        string
	TokenTTL         time.Duration
	ReportTimeout    time.Duration
	WatchdogInterval time.Duration
	SyncPollInterval time.Duration
	LogLevel         string
	LogFormat        string
}

func Load() Config {
	return Config{
		// Loopback by default: the report API trusts its caller.
		Addr:             getEnv("ADDR", "127.0.0.1:23333"),
		DBPath:           getEnv("DB_PATH", "./data/studytrack.db"),
		MigrationsDir:    getEnv("MIGRATIONS_DIR", "./migrations"),
		CORSOrigins:      getEnvList("CORS_ORIGINS", []string{"*"}),
		JWTSecret:        getEnv("JWT_SECRET", "change-this-secret"),
		TokenTTL:         time.Duration(getEnvInt("TOKEN_TTL_HOURS", 72)) * time.Hour,
		ReportTimeout:    time.Duration(getEnvInt("REPORT_TIMEOUT_SECONDS", 30)) * time.Second,
		WatchdogInterval: time.Duration(getEnvInt("WATCHDOG_INTERVAL_SECONDS", 10)) * time.Second,
		SyncPollInterval: time.Duration(getEnvInt("SYNC_POLL_SECONDS", 1)) * time.Second,
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "console"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
