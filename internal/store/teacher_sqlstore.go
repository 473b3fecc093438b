package store

import (
	"context"
	"database/sql"

	"github.com/georgysavva/scany/v2/sqlscan"
)

const teacherColumns = `teacher_id,
	lecturer_name,
	address,
	telephone,
	qualification,
	rate_per_hour,
	username,
	password_hash,
	module_name,
	no_of_hours_allocated,
	profile_picture`

type TeacherSQLStore struct {
	rdb, rwdb *sql.DB
}

func NewTeacherSQLStore(rdb, rwdb *sql.DB) *TeacherSQLStore {
	return &TeacherSQLStore{rdb, rwdb}
}

func (store *TeacherSQLStore) CreateTeacher(ctx context.Context, t *Teacher) (*Teacher, error) {
	query := `insert into teachers (
		lecturer_name,
		address,
		telephone,
		qualification,
		rate_per_hour,
		username,
		password_hash,
		module_name,
		no_of_hours_allocated,
		profile_picture
	)
	values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	returning teacher_id`
	err := sqlscan.Get(
		ctx, store.rwdb, t, query,
		t.LecturerName,
		t.Address,
		t.Telephone,
		t.Qualification,
		t.RatePerHour,
		t.Username,
		t.PasswordHash,
		t.ModuleName,
		t.NoOfHoursAllocated,
		t.ProfilePicture,
	)
	if err != nil {
		return nil, wrapUniqueViolation(err)
	}
	return t, nil
}

func (store *TeacherSQLStore) ReadTeacherByID(ctx context.Context, teacherID int64) (*Teacher, error) {
	t := new(Teacher)
	query := `select ` + teacherColumns + ` from teachers where teacher_id = $1`
	if err := sqlscan.Get(ctx, store.rdb, t, query, teacherID); err != nil {
		return nil, err
	}
	return t, nil
}

func (store *TeacherSQLStore) UpdateTeacher(ctx context.Context, t *Teacher) error {
	query := `update teachers
	set lecturer_name = $1,
		address = $2,
		telephone = $3,
		qualification = $4,
		rate_per_hour = $5,
		username = $6,
		password_hash = $7,
		module_name = $8,
		no_of_hours_allocated = $9,
		profile_picture = $10
	where teacher_id = $11`
	result, err := store.rwdb.ExecContext(
		ctx, query,
		t.LecturerName,
		t.Address,
		t.Telephone,
		t.Qualification,
		t.RatePerHour,
		t.Username,
		t.PasswordHash,
		t.ModuleName,
		t.NoOfHoursAllocated,
		t.ProfilePicture,
		t.TeacherID,
	)
	if err != nil {
		return wrapUniqueViolation(err)
	}
	return expectAffected(result)
}

func (store *TeacherSQLStore) DeleteTeacher(ctx context.Context, teacherID int64) error {
	result, err := store.rwdb.ExecContext(
		ctx, `delete from teachers where teacher_id = $1`, teacherID,
	)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func (store *TeacherSQLStore) ListTeachers(ctx context.Context) ([]*Teacher, error) {
	teachers := make([]*Teacher, 0)
	query := `select ` + teacherColumns + ` from teachers order by teacher_id`
	err := sqlscan.Select(ctx, store.rdb, &teachers, query)
	return teachers, err
}
