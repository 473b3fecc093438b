package service

import (
	"context"
	"strings"
	"testing"

	"github.com/haatos/simple-lms/internal/storage"
	"github.com/haatos/simple-lms/internal/store"
	"github.com/haatos/simple-lms/internal/testutil"
	"github.com/haatos/simple-lms/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestTeacherService(t *testing.T) (*TeacherService, *storage.LocalStorage) {
	t.Helper()
	db := testutil.NewTestDB(t)
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { files.Close() })
	return NewTeacherService(store.NewTeacherSQLStore(db, db), testHasher, files, zap.NewNop()), files
}

func TestTeacherService_CreateTeacher(t *testing.T) {
	t.Run("success - teacher is created with hashed password and picture", func(t *testing.T) {
		// arrange
		svc, files := newTestTeacherService(t)

		// act
		teacher, err := svc.CreateTeacher(context.Background(), TeacherParams{
			LecturerName: util.AsPtr("Ada Lovelace"),
			Username:     util.AsPtr("ada"),
			Password:     util.AsPtr("secret"),
			RatePerHour:  util.AsPtr(25.5),
		}, &Upload{Filename: "ada.jpg", Reader: strings.NewReader("jpg")})

		// assert
		assert.NoError(t, err)
		assert.NotZero(t, teacher.TeacherID)
		assert.True(t, testHasher.Verify("secret", teacher.PasswordHash))
		assert.Equal(t, 25.5, teacher.RatePerHour)
		rc, openErr := files.Open(context.Background(), teacher.ProfilePicture)
		assert.NoError(t, openErr)
		if rc != nil {
			rc.Close()
		}
	})
	t.Run("failure - required fields", func(t *testing.T) {
		svc, _ := newTestTeacherService(t)
		_, err := svc.CreateTeacher(context.Background(), TeacherParams{Username: util.AsPtr("ada")}, nil)
		assert.ErrorIs(t, err, ErrMissingField)
	})
	t.Run("failure - duplicate username", func(t *testing.T) {
		// arrange
		svc, _ := newTestTeacherService(t)
		p := TeacherParams{
			LecturerName: util.AsPtr("Ada Lovelace"),
			Username:     util.AsPtr("ada"),
			Password:     util.AsPtr("secret"),
		}
		_, err := svc.CreateTeacher(context.Background(), p, nil)
		require.NoError(t, err)

		// act
		_, err = svc.CreateTeacher(context.Background(), p, nil)

		// assert
		assert.ErrorIs(t, err, ErrDuplicateUsername)
	})
	t.Run("failure - negative rate", func(t *testing.T) {
		svc, _ := newTestTeacherService(t)
		_, err := svc.CreateTeacher(context.Background(), TeacherParams{
			LecturerName: util.AsPtr("Ada Lovelace"),
			Username:     util.AsPtr("ada"),
			Password:     util.AsPtr("secret"),
			RatePerHour:  util.AsPtr(-1.0),
		}, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestTeacherService_UpdateTeacher(t *testing.T) {
	t.Run("success - only given fields change", func(t *testing.T) {
		// arrange
		svc, _ := newTestTeacherService(t)
		created, err := svc.CreateTeacher(context.Background(), TeacherParams{
			LecturerName:  util.AsPtr("Ada Lovelace"),
			Username:      util.AsPtr("ada"),
			Password:      util.AsPtr("secret"),
			Qualification: util.AsPtr("PhD"),
		}, nil)
		require.NoError(t, err)
		oldHash := created.PasswordHash

		// act
		updated, err := svc.UpdateTeacher(context.Background(), created.TeacherID, TeacherParams{
			ModuleName: util.AsPtr("Analytical Engines"),
		}, nil)

		// assert
		assert.NoError(t, err)
		assert.Equal(t, "Analytical Engines", updated.ModuleName)
		assert.Equal(t, "PhD", updated.Qualification)
		assert.Equal(t, oldHash, updated.PasswordHash)
	})
	t.Run("success - new picture replaces the old one", func(t *testing.T) {
		// arrange
		svc, files := newTestTeacherService(t)
		created, err := svc.CreateTeacher(context.Background(), TeacherParams{
			LecturerName: util.AsPtr("Ada Lovelace"),
			Username:     util.AsPtr("ada"),
			Password:     util.AsPtr("secret"),
		}, &Upload{Filename: "old.png", Reader: strings.NewReader("old")})
		require.NoError(t, err)
		oldPicture := created.ProfilePicture

		// act
		updated, err := svc.UpdateTeacher(context.Background(), created.TeacherID, TeacherParams{},
			&Upload{Filename: "new.png", Reader: strings.NewReader("new")})

		// assert
		assert.NoError(t, err)
		assert.NotEqual(t, oldPicture, updated.ProfilePicture)
		_, oldErr := files.Open(context.Background(), oldPicture)
		assert.Error(t, oldErr)
	})
	t.Run("failure - teacher not found", func(t *testing.T) {
		svc, _ := newTestTeacherService(t)
		_, err := svc.UpdateTeacher(context.Background(), 404, TeacherParams{}, nil)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTeacherService_DeleteTeacher(t *testing.T) {
	t.Run("success - teacher is deleted", func(t *testing.T) {
		// arrange
		svc, _ := newTestTeacherService(t)
		created, err := svc.CreateTeacher(context.Background(), TeacherParams{
			LecturerName: util.AsPtr("Ada Lovelace"),
			Username:     util.AsPtr("ada"),
			Password:     util.AsPtr("secret"),
		}, nil)
		require.NoError(t, err)

		// act
		err = svc.DeleteTeacher(context.Background(), created.TeacherID)
		_, getErr := svc.GetTeacher(context.Background(), created.TeacherID)

		// assert
		assert.NoError(t, err)
		assert.ErrorIs(t, getErr, ErrNotFound)
	})
	t.Run("failure - teacher not found", func(t *testing.T) {
		svc, _ := newTestTeacherService(t)
		assert.ErrorIs(t, svc.DeleteTeacher(context.Background(), 404), ErrNotFound)
	})
}
