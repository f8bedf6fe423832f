package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"studytrack/internal/config"
	"studytrack/internal/db"
	"studytrack/internal/handler"
	"studytrack/internal/notify"
	"studytrack/internal/repository"
	"studytrack/internal/router"
	"studytrack/internal/service"
)

func main() {
	cfg := config.Load()
	logger := setupLogger(cfg)
	log.Logger = logger

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		logger.Fatal().Err(err).Msg("run migrations")
	}

	courseRepo := repository.NewCourseRepository(database)
	logRepo := repository.NewStudyLogRepository(database)
	settingsRepo := repository.NewSettingsRepository(database)

	syncSignal := service.NewSyncSignal()
	notifier := notify.NewLogNotifier(logger)

	tracker := service.NewTracker(courseRepo, logRepo, settingsRepo, notifier, syncSignal, cfg.ReportTimeout, logger)
	courseService := service.NewCourseService(courseRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	statsService := service.NewStatsService(courseRepo, logRepo, settingsRepo)
	syncService := service.NewSyncService(courseRepo, logRepo, settingsRepo, syncSignal, cfg.SyncPollInterval, logger)
	authService := service.NewAuthService(settingsRepo, cfg.JWTSecret, cfg.TokenTTL)

	watchdog := service.NewWatchdog(tracker, cfg.WatchdogInterval, logger)
	go watchdog.Run()
	go syncService.Run()

	reportHandler := handler.NewReportHandler(tracker, courseService)
	adminHandler := handler.NewAdminHandler(courseService, settingsService, statsService, tracker, syncService, authService)
	authHandler := handler.NewAuthHandler(authService)

	engine := router.New(authService, reportHandler, adminHandler, authHandler, cfg.CORSOrigins)
	logger.Info().Str("addr", cfg.Addr).Msg("study tracker listening")
	if err := engine.Run(cfg.Addr); err != nil {
		logger.Fatal().Err(err).Msg("run server")
	}
}

func setupLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFormat == "console" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
