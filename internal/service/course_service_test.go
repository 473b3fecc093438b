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

func newTestCourseService(t *testing.T) *CourseService {
	t.Helper()
	db := testutil.NewTestDB(t)
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { files.Close() })
	return NewCourseService(store.NewCourseSQLStore(db, db), files, zap.NewNop())
}

func TestCourseService(t *testing.T) {
	t.Run("success - course lifecycle", func(t *testing.T) {
		// arrange
		svc := newTestCourseService(t)
		ctx := context.Background()

		// act
		created, createErr := svc.CreateCourse(ctx, CourseParams{
			CourseName: util.AsPtr("Mathematics"),
			FullPrice:  util.AsPtr(100.0),
		}, &Upload{Filename: "cover.gif", Reader: strings.NewReader("gif")})
		require.NoError(t, createErr)
		updated, updateErr := svc.UpdateCourse(ctx, created.CourseID, CourseParams{
			AdmissionFees: util.AsPtr(15.0),
		}, nil)
		courses, listErr := svc.ListCourses(ctx)
		deleteErr := svc.DeleteCourse(ctx, created.CourseID)
		_, getErr := svc.GetCourse(ctx, created.CourseID)

		// assert
		assert.NoError(t, updateErr)
		assert.NoError(t, listErr)
		assert.NoError(t, deleteErr)
		assert.True(t, strings.HasPrefix(created.CoverPhoto, CourseCoverFolder+"/"))
		assert.Equal(t, "Mathematics", updated.CourseName)
		assert.Equal(t, 100.0, updated.FullPrice)
		assert.Equal(t, 15.0, updated.AdmissionFees)
		assert.Len(t, courses, 1)
		assert.ErrorIs(t, getErr, ErrNotFound)
	})
	t.Run("failure - course name required", func(t *testing.T) {
		svc := newTestCourseService(t)
		_, err := svc.CreateCourse(context.Background(), CourseParams{}, nil)
		assert.ErrorIs(t, err, ErrMissingField)
	})
	t.Run("failure - negative price", func(t *testing.T) {
		svc := newTestCourseService(t)
		_, err := svc.CreateCourse(context.Background(), CourseParams{
			CourseName: util.AsPtr("Mathematics"),
			FullPrice:  util.AsPtr(-5.0),
		}, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
	t.Run("failure - unsupported cover", func(t *testing.T) {
		svc := newTestCourseService(t)
		_, err := svc.CreateCourse(context.Background(), CourseParams{
			CourseName: util.AsPtr("Mathematics"),
		}, &Upload{Filename: "cover.pdf", Reader: strings.NewReader("pdf")})
		assert.ErrorIs(t, err, ErrUnsupportedFile)
	})
	t.Run("failure - missing course", func(t *testing.T) {
		svc := newTestCourseService(t)
		_, err := svc.UpdateCourse(context.Background(), 404, CourseParams{}, nil)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, svc.DeleteCourse(context.Background(), 404), ErrNotFound)
	})
}
