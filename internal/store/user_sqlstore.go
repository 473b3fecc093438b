package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
)

const userColumns = `user_id,
	username,
	email,
	password_hash,
	role,
	full_name,
	initials,
	contact_number,
	address,
	guardian_name,
	guardian_number,
	image_filename,
	created_at,
	reset_code,
	reset_code_expiry`

type UserSQLStore struct {
	rdb  *sql.DB
	rwdb *sql.DB
}

func NewUserSQLStore(rdb, rwdb *sql.DB) *UserSQLStore {
	return &UserSQLStore{rdb, rwdb}
}

// CreateUser inserts a user. Uniqueness of username and email is left to the
// unique indexes; a violation is returned as *DuplicateKeyError.
func (store *UserSQLStore) CreateUser(ctx context.Context, nu *NewUser) (*User, error) {
	user := &User{
		Username:     nu.Username,
		Email:        nu.Email,
		PasswordHash: nu.PasswordHash,
		Role:         nu.Role,
		UserProfile:  nu.UserProfile,
		CreatedAt:    time.Now().UTC(),
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	err := sqlscan.Get(
		ctx, store.rwdb, user,
		`
		insert into users (
			username,
			email,
			password_hash,
			role,
			full_name,
			initials,
			contact_number,
			address,
			guardian_name,
			guardian_number,
			image_filename,
			created_at
		)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		returning user_id
		`,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.FullName,
		user.Initials,
		user.ContactNumber,
		user.Address,
		user.GuardianName,
		user.GuardianNumber,
		user.ImageFilename,
		user.CreatedAt,
	)
	if err != nil {
		return nil, wrapUniqueViolation(err)
	}
	return user, nil
}

func (store *UserSQLStore) ReadUserByID(ctx context.Context, userID int64) (*User, error) {
	user := new(User)
	err := sqlscan.Get(
		ctx, store.rdb, user,
		`select `+userColumns+` from users where user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (store *UserSQLStore) ReadUserByUsername(
	ctx context.Context,
	username string,
) (*User, error) {
	user := new(User)
	err := sqlscan.Get(
		ctx, store.rdb, user,
		`select `+userColumns+` from users where username = $1`,
		username,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (store *UserSQLStore) ReadUserByEmail(ctx context.Context, email string) (*User, error) {
	user := new(User)
	err := sqlscan.Get(
		ctx, store.rdb, user,
		`select `+userColumns+` from users where email = $1`,
		email,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ReadUserByIdentifier matches identifier against username or email. A
// username match wins when both match different users.
func (store *UserSQLStore) ReadUserByIdentifier(
	ctx context.Context,
	identifier string,
) (*User, error) {
	user := new(User)
	err := sqlscan.Get(
		ctx, store.rdb, user,
		`select `+userColumns+` from users
		where username = $1 or email = $1
		order by case when username = $1 then 0 else 1 end
		limit 1`,
		identifier,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (store *UserSQLStore) ListUsers(ctx context.Context) ([]*User, error) {
	users := make([]*User, 0)
	err := sqlscan.Select(
		ctx, store.rdb, &users,
		`select `+userColumns+` from users order by username`,
	)
	return users, err
}

func (store *UserSQLStore) UpdateUserRole(ctx context.Context, userID int64, role string) error {
	result, err := store.rwdb.ExecContext(
		ctx,
		`update users
		set role = $1
		where user_id = $2`,
		role, userID)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func (store *UserSQLStore) UpdateUserPassword(
	ctx context.Context,
	userID int64,
	passwordHash string,
) error {
	query := `update users
	set password_hash = $1
	where user_id = $2`
	result, err := store.rwdb.ExecContext(ctx, query, passwordHash, userID)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func (store *UserSQLStore) SetResetCode(
	ctx context.Context,
	userID int64,
	code string,
	expiry time.Time,
) error {
	query := `update users
	set reset_code = $1,
		reset_code_expiry = $2
	where user_id = $3`
	result, err := store.rwdb.ExecContext(ctx, query, code, expiry, userID)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func (store *UserSQLStore) ClearResetCode(ctx context.Context, userID int64) error {
	query := `update users
	set reset_code = null,
		reset_code_expiry = null
	where user_id = $1`
	_, err := store.rwdb.ExecContext(ctx, query, userID)
	return err
}

// RevokeResetCode clears the reset code only while it still equals code, so
// a newer code issued in the meantime is left alone.
func (store *UserSQLStore) RevokeResetCode(
	ctx context.Context,
	userID int64,
	code string,
) (bool, error) {
	query := `update users
	set reset_code = null,
		reset_code_expiry = null
	where user_id = $1 and reset_code = $2`
	result, err := store.rwdb.ExecContext(ctx, query, userID, code)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n == 1, err
}

// ConsumeResetCode sets the new password hash and clears the reset code in a
// single statement, conditional on the code still being set to code. It
// reports false when the code was already consumed or replaced.
func (store *UserSQLStore) ConsumeResetCode(
	ctx context.Context,
	userID int64,
	code string,
	passwordHash string,
) (bool, error) {
	query := `update users
	set password_hash = $1,
		reset_code = null,
		reset_code_expiry = null
	where user_id = $2 and reset_code = $3`
	result, err := store.rwdb.ExecContext(ctx, query, passwordHash, userID, code)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n == 1, err
}

func (store *UserSQLStore) CreateLoginAttempt(
	ctx context.Context,
	attempt *LoginAttempt,
) (*LoginAttempt, error) {
	err := sqlscan.Get(
		ctx, store.rwdb, attempt,
		`
		insert into login_history (
			login_history_user_id,
			login_time,
			ip_address,
			user_agent,
			success
		)
		values ($1, $2, $3, $4, $5)
		returning login_history_id
		`,
		attempt.LoginHistoryUserID,
		attempt.LoginTime,
		attempt.IPAddress,
		attempt.UserAgent,
		attempt.Success,
	)
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

func (store *UserSQLStore) ListLoginHistory(
	ctx context.Context,
	userID int64,
	limit int,
) ([]*LoginAttempt, error) {
	attempts := make([]*LoginAttempt, 0)
	err := sqlscan.Select(
		ctx, store.rdb, &attempts,
		`select
			login_history_id,
			login_history_user_id,
			login_time,
			ip_address,
			user_agent,
			success
		from login_history
		where login_history_user_id = $1
		order by login_history_id desc
		limit $2`,
		userID, limit,
	)
	return attempts, err
}

// expectAffected maps an update that touched no rows to sql.ErrNoRows.
func expectAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
