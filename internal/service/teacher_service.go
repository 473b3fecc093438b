package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/haatos/simple-lms/internal/security"
	"github.com/haatos/simple-lms/internal/storage"
	"github.com/haatos/simple-lms/internal/store"
	"go.uber.org/zap"
)

type TeacherStore interface {
	CreateTeacher(context.Context, *store.Teacher) (*store.Teacher, error)
	ReadTeacherByID(context.Context, int64) (*store.Teacher, error)
	UpdateTeacher(context.Context, *store.Teacher) error
	DeleteTeacher(context.Context, int64) error
	ListTeachers(context.Context) ([]*store.Teacher, error)
}

// TeacherParams holds teacher fields from a request. Nil fields are left
// unchanged on update.
type TeacherParams struct {
	LecturerName       *string
	Address            *string
	Telephone          *string
	Qualification      *string
	RatePerHour        *float64
	Username           *string
	Password           *string
	ModuleName         *string
	NoOfHoursAllocated *int64
}

type TeacherService struct {
	teacherStore TeacherStore
	hasher       security.PasswordHasher
	files        storage.Storage
	logger       *zap.Logger
}

func NewTeacherService(
	teacherStore TeacherStore,
	hasher security.PasswordHasher,
	files storage.Storage,
	logger *zap.Logger,
) *TeacherService {
	return &TeacherService{teacherStore, hasher, files, logger}
}

func (s *TeacherService) CreateTeacher(
	ctx context.Context,
	p TeacherParams,
	picture *Upload,
) (*store.Teacher, error) {
	if err := requireFields(
		"username", deref(p.Username),
		"password", deref(p.Password),
		"lecturer_name", deref(p.LecturerName),
	); err != nil {
		return nil, err
	}
	if err := validateTeacherNumbers(p); err != nil {
		return nil, err
	}

	t := new(store.Teacher)
	if err := s.apply(t, p); err != nil {
		return nil, err
	}
	name, err := saveUpload(ctx, s.files, TeacherPictureFolder, picture)
	if err != nil {
		return nil, err
	}
	t.ProfilePicture = name

	created, err := s.teacherStore.CreateTeacher(ctx, t)
	if err != nil {
		deleteUpload(ctx, s.files, s.logger, name)
		if store.IsUniqueConstraintError(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return created, nil
}

func (s *TeacherService) GetTeacher(ctx context.Context, teacherID int64) (*store.Teacher, error) {
	t, err := s.teacherStore.ReadTeacherByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *TeacherService) ListTeachers(ctx context.Context) ([]*store.Teacher, error) {
	return s.teacherStore.ListTeachers(ctx)
}

// UpdateTeacher applies the non-nil fields of p and replaces the profile
// picture when one is given.
func (s *TeacherService) UpdateTeacher(
	ctx context.Context,
	teacherID int64,
	p TeacherParams,
	picture *Upload,
) (*store.Teacher, error) {
	if err := validateTeacherNumbers(p); err != nil {
		return nil, err
	}
	t, err := s.GetTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if err := s.apply(t, p); err != nil {
		return nil, err
	}
	if t.LecturerName == "" || t.Username == "" {
		return nil, &MissingFieldError{Fields: []string{"username", "lecturer_name"}}
	}

	oldPicture := t.ProfilePicture
	name, err := saveUpload(ctx, s.files, TeacherPictureFolder, picture)
	if err != nil {
		return nil, err
	}
	if name != "" {
		t.ProfilePicture = name
	}

	if err := s.teacherStore.UpdateTeacher(ctx, t); err != nil {
		deleteUpload(ctx, s.files, s.logger, name)
		switch {
		case store.IsUniqueConstraintError(err):
			return nil, ErrDuplicateUsername
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		}
		return nil, err
	}
	if name != "" {
		deleteUpload(ctx, s.files, s.logger, oldPicture)
	}
	return t, nil
}

func (s *TeacherService) DeleteTeacher(ctx context.Context, teacherID int64) error {
	t, err := s.GetTeacher(ctx, teacherID)
	if err != nil {
		return err
	}
	if err := s.teacherStore.DeleteTeacher(ctx, teacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	deleteUpload(ctx, s.files, s.logger, t.ProfilePicture)
	return nil
}

func (s *TeacherService) apply(t *store.Teacher, p TeacherParams) error {
	setString(&t.LecturerName, p.LecturerName)
	setString(&t.Address, p.Address)
	setString(&t.Telephone, p.Telephone)
	setString(&t.Qualification, p.Qualification)
	setString(&t.Username, p.Username)
	setString(&t.ModuleName, p.ModuleName)
	if p.RatePerHour != nil {
		t.RatePerHour = *p.RatePerHour
	}
	if p.NoOfHoursAllocated != nil {
		t.NoOfHoursAllocated = *p.NoOfHoursAllocated
	}
	if p.Password != nil && *p.Password != "" {
		hash, err := hashPassword(s.hasher, *p.Password)
		if err != nil {
			return err
		}
		t.PasswordHash = hash
	}
	return nil
}

func validateTeacherNumbers(p TeacherParams) error {
	if p.RatePerHour != nil && *p.RatePerHour < 0 {
		return ErrInvalidInput
	}
	if p.NoOfHoursAllocated != nil && *p.NoOfHoursAllocated < 0 {
		return ErrInvalidInput
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
