package service

import (
	"context"

	apperrors "studytrack/internal/errors"
	"studytrack/internal/model"
	"studytrack/internal/repository"
)

// Date range defaults when the caller supplies no bounds.
const (
	rangeStartMin = "1970-01-01"
	rangeEndMax   = "2099-12-31"
)

// StatsService derives statistics from committed study logs. Results are
// recomputed on every call and depend only on store contents and the supplied
// parameters, never on the wall clock.
type StatsService struct {
	courses  *repository.CourseRepository
	logs     *repository.StudyLogRepository
	settings *repository.SettingsRepository
}

func NewStatsService(
	courses *repository.CourseRepository,
	logs *repository.StudyLogRepository,
	settings *repository.SettingsRepository,
) *StatsService {
	return &StatsService{courses: courses, logs: logs, settings: settings}
}

func (s *StatsService) GetStatistics(ctx context.Context, startDate, endDate, subject *string) (*model.Statistics, *apperrors.APIError) {
	start := rangeStartMin
	if startDate != nil && *startDate != "" {
		start = *startDate
	}
	end := rangeEndMax
	if endDate != nil && *endDate != "" {
		end = *endDate
	}
	if subject != nil && *subject == "" {
		subject = nil
	}

	// Subjects cover every course regardless of the filter.
	subjects, err := s.courses.DistinctSubjects(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list subjects")
	}

	totals, err := s.logs.CourseTotals(ctx, start, end, subject)
	if err != nil {
		return nil, apperrors.Internal("failed to aggregate course totals")
	}

	var sum int64
	for _, t := range totals {
		sum += t.Duration
	}

	courseStats := make([]model.CourseStat, 0, len(totals))
	for _, t := range totals {
		if t.Duration == 0 {
			continue
		}
		percent := 0.0
		if sum > 0 {
			percent = float64(t.Duration) / float64(sum) * 100
		}
		courseStats = append(courseStats, model.CourseStat{
			CourseID:   t.CourseID,
			CourseName: t.Name,
			Subject:    t.Subject,
			Duration:   t.Duration,
			Percent:    percent,
		})
	}

	dailyGoal, err := s.settings.DailyGoal(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to read daily goal")
	}

	dates, err := s.logs.DateTotals(ctx, start, end, subject)
	if err != nil {
		return nil, apperrors.Internal("failed to aggregate daily totals")
	}

	dailyStats := make([]model.DailyStat, 0, len(dates))
	for _, d := range dates {
		dailyStats = append(dailyStats, model.DailyStat{
			Date:     d.Date,
			Duration: d.Duration,
			GoalMet:  d.Duration >= dailyGoal,
		})
	}

	return &model.Statistics{
		Subjects:    subjects,
		CourseStats: courseStats,
		DailyStats:  dailyStats,
	}, nil
}

// TodayStudied returns the accumulated duration across all courses for the
// given date key.
func (s *StatsService) TodayStudied(ctx context.Context, date string) (int64, *apperrors.APIError) {
	total, err := s.logs.TotalForDate(ctx, date)
	if err != nil {
		return 0, apperrors.Internal("failed to read today's total")
	}
	return total, nil
}
