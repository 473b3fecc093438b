package store

import (
	"context"
	"database/sql"

	"github.com/georgysavva/scany/v2/sqlscan"
)

const courseColumns = `course_id,
	course_name,
	course_duration,
	cover_photo,
	course_description,
	course_syllabus,
	teacher_name,
	teacher_qualification,
	duration,
	payment,
	full_price,
	admission_fees`

type CourseSQLStore struct {
	rdb, rwdb *sql.DB
}

func NewCourseSQLStore(rdb, rwdb *sql.DB) *CourseSQLStore {
	return &CourseSQLStore{rdb, rwdb}
}

func (store *CourseSQLStore) CreateCourse(ctx context.Context, c *Course) (*Course, error) {
	query := `insert into courses (
		course_name,
		course_duration,
		cover_photo,
		course_description,
		course_syllabus,
		teacher_name,
		teacher_qualification,
		duration,
		payment,
		full_price,
		admission_fees
	)
	values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	returning course_id`
	err := sqlscan.Get(
		ctx, store.rwdb, c, query,
		c.CourseName,
		c.CourseDuration,
		c.CoverPhoto,
		c.CourseDescription,
		c.CourseSyllabus,
		c.TeacherName,
		c.TeacherQualification,
		c.Duration,
		c.Payment,
		c.FullPrice,
		c.AdmissionFees,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (store *CourseSQLStore) ReadCourseByID(ctx context.Context, courseID int64) (*Course, error) {
	c := new(Course)
	query := `select ` + courseColumns + ` from courses where course_id = $1`
	if err := sqlscan.Get(ctx, store.rdb, c, query, courseID); err != nil {
		return nil, err
	}
	return c, nil
}

func (store *CourseSQLStore) UpdateCourse(ctx context.Context, c *Course) error {
	query := `update courses
	set course_name = $1,
		course_duration = $2,
		cover_photo = $3,
		course_description = $4,
		course_syllabus = $5,
		teacher_name = $6,
		teacher_qualification = $7,
		duration = $8,
		payment = $9,
		full_price = $10,
		admission_fees = $11
	where course_id = $12`
	result, err := store.rwdb.ExecContext(
		ctx, query,
		c.CourseName,
		c.CourseDuration,
		c.CoverPhoto,
		c.CourseDescription,
		c.CourseSyllabus,
		c.TeacherName,
		c.TeacherQualification,
		c.Duration,
		c.Payment,
		c.FullPrice,
		c.AdmissionFees,
		c.CourseID,
	)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func (store *CourseSQLStore) DeleteCourse(ctx context.Context, courseID int64) error {
	result, err := store.rwdb.ExecContext(
		ctx, `delete from courses where course_id = $1`, courseID,
	)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func (store *CourseSQLStore) ListCourses(ctx context.Context) ([]*Course, error) {
	courses := make([]*Course, 0)
	query := `select ` + courseColumns + ` from courses order by course_id`
	err := sqlscan.Select(ctx, store.rdb, &courses, query)
	return courses, err
}
