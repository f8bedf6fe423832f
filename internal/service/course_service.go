package service

import (
	"context"
	"strings"

	apperrors "studytrack/internal/errors"
	"studytrack/internal/model"
	"studytrack/internal/repository"
)

type CourseService struct {
	courses *repository.CourseRepository
}

type CourseInput struct {
	Name       string
	Subject    string
	URLPattern string
}

func NewCourseService(courses *repository.CourseRepository) *CourseService {
	return &CourseService{courses: courses}
}

func (s *CourseService) List(ctx context.Context) ([]model.Course, *apperrors.APIError) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list courses")
	}
	return courses, nil
}

func (s *CourseService) Create(ctx context.Context, input CourseInput) (*model.Course, *apperrors.APIError) {
	if apiErr := validateCourseInput(&input); apiErr != nil {
		return nil, apiErr
	}

	course, err := s.courses.Create(ctx, input.Name, input.Subject, input.URLPattern)
	if err != nil {
		return nil, apperrors.Internal("failed to create course")
	}
	return course, nil
}

func (s *CourseService) Update(ctx context.Context, id string, input CourseInput) (*model.Course, *apperrors.APIError) {
	if apiErr := validateCourseInput(&input); apiErr != nil {
		return nil, apiErr
	}

	course := model.Course{
		ID:         id,
		Name:       input.Name,
		Subject:    input.Subject,
		URLPattern: input.URLPattern,
	}
	err := s.courses.Update(ctx, &course)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("course_not_found", "course not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to update course")
	}
	return &course, nil
}

// Delete removes a course together with all of its study log rows.
func (s *CourseService) Delete(ctx context.Context, id string) *apperrors.APIError {
	err := s.courses.Delete(ctx, id)
	if err == repository.ErrNotFound {
		return apperrors.NotFound("course_not_found", "course not found")
	}
	if err != nil {
		return apperrors.Internal("failed to delete course")
	}
	return nil
}

func validateCourseInput(input *CourseInput) *apperrors.APIError {
	input.Name = strings.TrimSpace(input.Name)
	input.Subject = strings.TrimSpace(input.Subject)
	input.URLPattern = strings.TrimSpace(input.URLPattern)

	if input.Name == "" {
		return apperrors.BadRequest("invalid_name", "course name is required")
	}
	if input.Subject == "" {
		return apperrors.BadRequest("invalid_subject", "course subject is required")
	}
	return nil
}
