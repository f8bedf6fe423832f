package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Watchdog periodically asks the tracker to close sessions whose reporting
// source has gone silent. It runs for the process lifetime; there is no
// graceful drain, shutdown is whole-process termination.
type Watchdog struct {
	tracker  *Tracker
	interval time.Duration
	logger   zerolog.Logger
}

func NewWatchdog(tracker *Tracker, interval time.Duration, logger zerolog.Logger) *Watchdog {
	return &Watchdog{
		tracker:  tracker,
		interval: interval,
		logger:   logger.With().Str("component", "watchdog").Logger(),
	}
}

func (w *Watchdog) Run() {
	w.logger.Info().Dur("interval", w.interval).Msg("watchdog started")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for range ticker.C {
		w.tracker.CheckTimeout(context.Background())
	}
}
