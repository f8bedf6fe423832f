package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"studytrack/internal/metrics"
	"studytrack/internal/model"
	"studytrack/internal/notify"
	"studytrack/internal/repository"
)

const (
	closeReasonPaused  = "paused"
	closeReasonTimeout = "timeout"
)

// Tracker owns the in-memory session state: which course is active, when its
// session started and when it last reported in. Every transition, whether
// driven by an inbound report or by the timeout watchdog, runs under one
// mutex, so a half-applied transition is never observable and all duration
// commits for a given (course, date) are serialized.
//
// Invariant: activeCourse is set if and only if sessionStart is set.
// lastReport is only meaningful while a session is open and never precedes
// sessionStart.
type Tracker struct {
	mu sync.Mutex

	activeCourse *string
	sessionStart *int64
	lastReport   *int64

	courses  *repository.CourseRepository
	logs     *repository.StudyLogRepository
	settings *repository.SettingsRepository

	notifier   notify.Notifier
	syncSignal *SyncSignal
	timeout    time.Duration
	logger     zerolog.Logger

	now func() time.Time
}

type notification struct {
	title string
	body  string
}

func NewTracker(
	courses *repository.CourseRepository,
	logs *repository.StudyLogRepository,
	settings *repository.SettingsRepository,
	notifier notify.Notifier,
	syncSignal *SyncSignal,
	timeout time.Duration,
	logger zerolog.Logger,
) *Tracker {
	return &Tracker{
		courses:    courses,
		logs:       logs,
		settings:   settings,
		notifier:   notifier,
		syncSignal: syncSignal,
		timeout:    timeout,
		logger:     logger.With().Str("component", "tracker").Logger(),
		now:        time.Now,
	}
}

// HandleReport applies one activity report to the session state. It never
// returns an error: a report that cannot be acted on (stop report for a
// course that is not active, commit against a deleted course) is absorbed,
// and storage failures on duration commits are logged and swallowed so a
// single bad write never kills the session machine.
func (t *Tracker) HandleReport(ctx context.Context, report model.Report) {
	t.mu.Lock()
	var pending []notification

	if report.Active {
		switch {
		case t.activeCourse == nil:
			pending = t.openLocked(ctx, report, false)
		case *t.activeCourse != report.CourseID:
			// Course switch: the previous course gets credit up to the
			// switch timestamp, then the new session opens at that instant.
			t.commitLocked(ctx, *t.activeCourse, t.today(), report.Timestamp-*t.sessionStart)
			pending = t.openLocked(ctx, report, true)
		default:
			last := report.Timestamp
			t.lastReport = &last
		}
	} else if t.activeCourse != nil && *t.activeCourse == report.CourseID {
		// The session is credited up to the last confirmed active report, not
		// the stop report's own timestamp, so a stale final tick is never
		// double-counted.
		pending = t.closeLocked(ctx, *t.lastReport, closeReasonPaused)
	}

	t.finishLocked(ctx, pending)
}

// CheckTimeout force-closes a session whose reporting has gone silent longer
// than the configured threshold, exactly as if a stop report had arrived
// timestamped at the last confirmed report.
func (t *Tracker) CheckTimeout(ctx context.Context) {
	t.mu.Lock()
	var pending []notification

	if t.activeCourse != nil && t.lastReport != nil {
		silentFor := t.now().Unix() - *t.lastReport
		if silentFor > int64(t.timeout/time.Second) {
			t.logger.Info().
				Str("course_id", *t.activeCourse).
				Int64("silent_seconds", silentFor).
				Msg("reporting went silent, auto pausing session")
			pending = t.closeLocked(ctx, *t.lastReport, closeReasonTimeout)
		}
	}

	t.finishLocked(ctx, pending)
}

// CurrentSession returns the live session view, or nil when idle. Elapsed
// time is computed from the session start, not from committed logs.
func (t *Tracker) CurrentSession(ctx context.Context) (*model.CurrentSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.activeCourse == nil {
		return nil, nil
	}

	course, err := t.courses.GetByID(ctx, *t.activeCourse)
	if err == repository.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &model.CurrentSession{
		CourseName: course.Name,
		Duration:   t.now().Unix() - *t.sessionStart,
	}, nil
}

// openLocked starts a session for the reported course. State is recorded even
// when the course is unknown; any later commit for it is dropped silently.
func (t *Tracker) openLocked(ctx context.Context, report model.Report, switched bool) []notification {
	courseID := report.CourseID
	start := report.Timestamp
	last := report.Timestamp
	t.activeCourse = &courseID
	t.sessionStart = &start
	t.lastReport = &last
	metrics.ActiveSession.Set(1)

	course, err := t.courses.GetByID(ctx, courseID)
	if err != nil {
		if err != repository.ErrNotFound {
			t.logger.Error().Err(err).Str("course_id", courseID).Msg("look up course")
		}
		return nil
	}

	title := "Study session started"
	if switched {
		title = "Course switched"
	}
	return []notification{{title: title, body: "Now studying: " + course.Name}}
}

// closeLocked ends the open session, crediting it up to the effective
// timestamp, and resets the state to idle.
func (t *Tracker) closeLocked(ctx context.Context, effective int64, reason string) []notification {
	courseID := *t.activeCourse
	today := t.today()
	t.commitLocked(ctx, courseID, today, effective-*t.sessionStart)

	var pending []notification
	course, err := t.courses.GetByID(ctx, courseID)
	if err == nil {
		total, totalErr := t.logs.TotalForDate(ctx, today)
		if totalErr != nil {
			t.logger.Error().Err(totalErr).Msg("read today total")
		}
		pending = append(pending, notification{
			title: "Study paused",
			body:  fmt.Sprintf("%s: %d minutes studied today", course.Name, total/60),
		})
	} else if err != repository.ErrNotFound {
		t.logger.Error().Err(err).Str("course_id", courseID).Msg("look up course")
	}

	syncOnPause, err := t.settings.SyncOnPause(ctx)
	if err != nil {
		t.logger.Error().Err(err).Msg("read sync_on_pause setting")
	}
	if syncOnPause {
		t.syncSignal.Raise()
	}

	t.activeCourse = nil
	t.sessionStart = nil
	t.lastReport = nil
	metrics.ActiveSession.Set(0)
	metrics.SessionsClosedTotal.WithLabelValues(reason).Inc()
	return pending
}

// commitLocked accumulates a completed duration into today's log for the
// course. Non-positive durations and storage failures are absorbed; losing a
// single increment is preferable to surfacing an error into the report path.
func (t *Tracker) commitLocked(ctx context.Context, courseID, date string, seconds int64) {
	if seconds <= 0 {
		return
	}

	committed, err := t.logs.AddDuration(ctx, courseID, date, seconds)
	if err != nil {
		t.logger.Error().
			Err(err).
			Str("course_id", courseID).
			Int64("seconds", seconds).
			Msg("commit study duration")
		return
	}
	if committed {
		metrics.StudySecondsCommitted.Add(float64(seconds))
	}
}

// finishLocked releases the lock and dispatches collected notifications. The
// hook must never run under the lock; it may block on OS delivery.
func (t *Tracker) finishLocked(ctx context.Context, pending []notification) {
	enabled := false
	if len(pending) > 0 {
		var err error
		enabled, err = t.settings.NotificationsEnabled(ctx)
		if err != nil {
			t.logger.Error().Err(err).Msg("read notifications setting")
			enabled = true
		}
	}
	t.mu.Unlock()

	if !enabled {
		return
	}
	for _, n := range pending {
		t.notifier.Notify(n.title, n.body)
	}
}

func (t *Tracker) today() string {
	return t.now().Format(model.DateLayout)
}
