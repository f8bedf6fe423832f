package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"studytrack/internal/model"
)

type StudyLogRepository struct {
	db *sql.DB
}

func NewStudyLogRepository(db *sql.DB) *StudyLogRepository {
	return &StudyLogRepository{db: db}
}

// AddDuration accumulates seconds into the (course, date) aggregate row,
// inserting it if missing, and reports whether anything was written. A
// duration for a course that no longer exists is dropped silently: the course
// may have been deleted while its session was still open, and an orphaned log
// row must never be created for it.
//
// Callers are expected to serialize commits for a given (course, date); in
// practice every commit passes through the session lock.
func (r *StudyLogRepository) AddDuration(ctx context.Context, courseID, date string, seconds int64) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(
		ctx,
		`SELECT 1 FROM courses WHERE id = ?`,
		courseID,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check course: %w", err)
	}

	result, err := r.db.ExecContext(
		ctx,
		`UPDATE study_logs SET duration = duration + ? WHERE course_id = ? AND date = ?`,
		seconds,
		courseID,
		date,
	)
	if err != nil {
		return false, fmt.Errorf("accumulate study log: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("accumulate rows affected: %w", err)
	}
	if updated > 0 {
		return true, nil
	}

	_, err = r.db.ExecContext(
		ctx,
		`INSERT INTO study_logs (id, course_id, date, duration) VALUES (?, ?, ?, ?)`,
		uuid.NewString(),
		courseID,
		date,
		seconds,
	)
	if err != nil {
		return false, fmt.Errorf("insert study log: %w", err)
	}
	return true, nil
}

// TotalForDate sums the committed duration across all courses for one day.
func (r *StudyLogRepository) TotalForDate(ctx context.Context, date string) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(
		ctx,
		`SELECT COALESCE(SUM(duration), 0) FROM study_logs WHERE date = ?`,
		date,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total for date: %w", err)
	}
	return total, nil
}

func (r *StudyLogRepository) ListAll(ctx context.Context) ([]model.StudyLog, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, course_id, date, duration FROM study_logs ORDER BY date DESC, course_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list study logs: %w", err)
	}
	defer rows.Close()

	logs := make([]model.StudyLog, 0)
	for rows.Next() {
		var entry model.StudyLog
		if err := rows.Scan(&entry.ID, &entry.CourseID, &entry.Date, &entry.Duration); err != nil {
			return nil, fmt.Errorf("scan study log: %w", err)
		}
		logs = append(logs, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate study logs: %w", err)
	}

	return logs, nil
}

// CourseTotal is one course's accumulated duration within a date range.
type CourseTotal struct {
	CourseID string
	Name     string
	Subject  string
	Duration int64
}

// CourseTotals returns per-course totals within [start, end]. Courses with no
// logs in range appear with a zero total; the subject filter, when non-nil,
// restricts which courses are reported at all.
func (r *StudyLogRepository) CourseTotals(ctx context.Context, start, end string, subject *string) ([]CourseTotal, error) {
	query := `SELECT c.id, c.name, c.subject, COALESCE(SUM(l.duration), 0) AS total
		FROM courses c
		LEFT JOIN study_logs l ON c.id = l.course_id AND l.date BETWEEN ? AND ?`
	args := []interface{}{start, end}
	if subject != nil {
		query += ` WHERE c.subject = ?`
		args = append(args, *subject)
	}
	query += ` GROUP BY c.id ORDER BY total DESC, c.name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("course totals: %w", err)
	}
	defer rows.Close()

	totals := make([]CourseTotal, 0)
	for rows.Next() {
		var t CourseTotal
		if err := rows.Scan(&t.CourseID, &t.Name, &t.Subject, &t.Duration); err != nil {
			return nil, fmt.Errorf("scan course total: %w", err)
		}
		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate course totals: %w", err)
	}

	return totals, nil
}

// DateTotal is one day's accumulated duration within a date range.
type DateTotal struct {
	Date     string
	Duration int64
}

// DateTotals returns per-day sums within [start, end], newest first. Only
// days with at least one matching row appear.
func (r *StudyLogRepository) DateTotals(ctx context.Context, start, end string, subject *string) ([]DateTotal, error) {
	var query string
	args := []interface{}{start, end}
	if subject != nil {
		query = `SELECT l.date, SUM(l.duration) AS total
			FROM study_logs l
			JOIN courses c ON l.course_id = c.id
			WHERE l.date BETWEEN ? AND ? AND c.subject = ?
			GROUP BY l.date
			ORDER BY l.date DESC`
		args = append(args, *subject)
	} else {
		query = `SELECT date, SUM(duration) AS total
			FROM study_logs
			WHERE date BETWEEN ? AND ?
			GROUP BY date
			ORDER BY date DESC`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("date totals: %w", err)
	}
	defer rows.Close()

	totals := make([]DateTotal, 0)
	for rows.Next() {
		var t DateTotal
		if err := rows.Scan(&t.Date, &t.Duration); err != nil {
			return nil, fmt.Errorf("scan date total: %w", err)
		}
		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate date totals: %w", err)
	}

	return totals, nil
}
