package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/haatos/simple-lms/internal/storage"
	"github.com/haatos/simple-lms/internal/store"
	"go.uber.org/zap"
)

type CourseStore interface {
	CreateCourse(context.Context, *store.Course) (*store.Course, error)
	ReadCourseByID(context.Context, int64) (*store.Course, error)
	UpdateCourse(context.Context, *store.Course) error
	DeleteCourse(context.Context, int64) error
	ListCourses(context.Context) ([]*store.Course, error)
}

// CourseParams holds course fields from a request. Nil fields are left
// unchanged on update.
type CourseParams struct {
	CourseName           *string
	CourseDuration       *string
	CourseDescription    *string
	CourseSyllabus       *string
	TeacherName          *string
	TeacherQualification *string
	Duration             *string
	Payment              *string
	FullPrice            *float64
	AdmissionFees        *float64
}

type CourseService struct {
	courseStore CourseStore
	files       storage.Storage
	logger      *zap.Logger
}

func NewCourseService(
	courseStore CourseStore,
	files storage.Storage,
	logger *zap.Logger,
) *CourseService {
	return &CourseService{courseStore, files, logger}
}

func (s *CourseService) CreateCourse(
	ctx context.Context,
	p CourseParams,
	cover *Upload,
) (*store.Course, error) {
	if err := requireFields("course_name", deref(p.CourseName)); err != nil {
		return nil, err
	}
	if err := validatePrices(p); err != nil {
		return nil, err
	}

	c := new(store.Course)
	applyCourse(c, p)
	name, err := saveUpload(ctx, s.files, CourseCoverFolder, cover)
	if err != nil {
		return nil, err
	}
	c.CoverPhoto = name

	created, err := s.courseStore.CreateCourse(ctx, c)
	if err != nil {
		deleteUpload(ctx, s.files, s.logger, name)
		return nil, err
	}
	return created, nil
}

func (s *CourseService) GetCourse(ctx context.Context, courseID int64) (*store.Course, error) {
	c, err := s.courseStore.ReadCourseByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CourseService) ListCourses(ctx context.Context) ([]*store.Course, error) {
	return s.courseStore.ListCourses(ctx)
}

func (s *CourseService) UpdateCourse(
	ctx context.Context,
	courseID int64,
	p CourseParams,
	cover *Upload,
) (*store.Course, error) {
	if err := validatePrices(p); err != nil {
		return nil, err
	}
	c, err := s.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	applyCourse(c, p)
	if c.CourseName == "" {
		return nil, &MissingFieldError{Fields: []string{"course_name"}}
	}

	oldCover := c.CoverPhoto
	name, err := saveUpload(ctx, s.files, CourseCoverFolder, cover)
	if err != nil {
		return nil, err
	}
	if name != "" {
		c.CoverPhoto = name
	}

	if err := s.courseStore.UpdateCourse(ctx, c); err != nil {
		deleteUpload(ctx, s.files, s.logger, name)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if name != "" {
		deleteUpload(ctx, s.files, s.logger, oldCover)
	}
	return c, nil
}

func (s *CourseService) DeleteCourse(ctx context.Context, courseID int64) error {
	c, err := s.GetCourse(ctx, courseID)
	if err != nil {
		return err
	}
	if err := s.courseStore.DeleteCourse(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	deleteUpload(ctx, s.files, s.logger, c.CoverPhoto)
	return nil
}

func applyCourse(c *store.Course, p CourseParams) {
	setString(&c.CourseName, p.CourseName)
	setString(&c.CourseDuration, p.CourseDuration)
	setString(&c.CourseDescription, p.CourseDescription)
	setString(&c.CourseSyllabus, p.CourseSyllabus)
	setString(&c.TeacherName, p.TeacherName)
	setString(&c.TeacherQualification, p.TeacherQualification)
	setString(&c.Duration, p.Duration)
	setString(&c.Payment, p.Payment)
	if p.FullPrice != nil {
		c.FullPrice = *p.FullPrice
	}
	if p.AdmissionFees != nil {
		c.AdmissionFees = *p.AdmissionFees
	}
}

func validatePrices(p CourseParams) error {
	if p.FullPrice != nil && *p.FullPrice < 0 {
		return ErrInvalidInput
	}
	if p.AdmissionFees != nil && *p.AdmissionFees < 0 {
		return ErrInvalidInput
	}
	return nil
}
