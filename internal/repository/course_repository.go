package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"studytrack/internal/model"
)

type CourseRepository struct {
	db *sql.DB
}

func NewCourseRepository(db *sql.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, name, subject, url_pattern FROM courses ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	courses := make([]model.Course, 0)
	for rows.Next() {
		var course model.Course
		if err := rows.Scan(&course.ID, &course.Name, &course.Subject, &course.URLPattern); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}

	return courses, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*model.Course, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, name, subject, url_pattern FROM courses WHERE id = ?`,
		id,
	)

	var course model.Course
	if err := row.Scan(&course.ID, &course.Name, &course.Subject, &course.URLPattern); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}
	return &course, nil
}

func (r *CourseRepository) Create(ctx context.Context, name, subject, urlPattern string) (*model.Course, error) {
	course := model.Course{
		ID:         uuid.NewString(),
		Name:       name,
		Subject:    subject,
		URLPattern: urlPattern,
	}

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO courses (id, name, subject, url_pattern) VALUES (?, ?, ?, ?)`,
		course.ID,
		course.Name,
		course.Subject,
		course.URLPattern,
	)
	if err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return &course, nil
}

func (r *CourseRepository) Update(ctx context.Context, course *model.Course) error {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE courses SET name = ?, subject = ?, url_pattern = ? WHERE id = ?`,
		course.Name,
		course.Subject,
		course.URLPattern,
		course.ID,
	)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update course rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the course and all of its study log rows. Both deletes run
// in one transaction so an orphaned log row is never observable.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer tx.Rollback()

	// Logs first: the foreign key has no ON DELETE action.
	if _, err := tx.ExecContext(ctx, `DELETE FROM study_logs WHERE course_id = ?`, id); err != nil {
		return fmt.Errorf("delete course logs: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete course rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete tx: %w", err)
	}
	return nil
}

// DistinctSubjects returns every subject label in use, sorted. The list is
// independent of any statistics filter.
func (r *CourseRepository) DistinctSubjects(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT DISTINCT subject FROM courses ORDER BY subject`,
	)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	subjects := make([]string, 0)
	for rows.Next() {
		var subject string
		if err := rows.Scan(&subject); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, subject)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subjects: %w", err)
	}

	return subjects, nil
}
