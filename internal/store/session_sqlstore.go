package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
)

type SessionSQLStore struct {
	rdb  *sql.DB
	rwdb *sql.DB
}

func NewSessionSQLStore(rdb, rwdb *sql.DB) *SessionSQLStore {
	return &SessionSQLStore{rdb, rwdb}
}

func (store *SessionSQLStore) CreateAuthSession(ctx context.Context, as *AuthSession) error {
	_, err := store.rwdb.ExecContext(
		ctx,
		`
		insert into auth_sessions (
			auth_session_id,
			auth_session_user_id,
			auth_session_role,
			auth_session_super_admin,
			auth_session_expires
		)
		values ($1, $2, $3, $4, $5)
		`,
		as.AuthSessionID,
		as.AuthSessionUserID,
		as.AuthSessionRole,
		as.AuthSessionSuperAdmin,
		as.AuthSessionExpires,
	)
	return err
}

func (store *SessionSQLStore) ReadAuthSession(
	ctx context.Context,
	sessionID string,
) (*AuthSession, error) {
	as := new(AuthSession)
	err := sqlscan.Get(
		ctx, store.rdb, as,
		`select
			auth_session_id,
			auth_session_user_id,
			auth_session_role,
			auth_session_super_admin,
			auth_session_expires
		from auth_sessions
		where auth_session_id = $1`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	return as, nil
}

func (store *SessionSQLStore) UpdateAuthSessionSuperAdmin(
	ctx context.Context,
	sessionID string,
	superAdmin bool,
) error {
	result, err := store.rwdb.ExecContext(
		ctx,
		`update auth_sessions
		set auth_session_super_admin = $1
		where auth_session_id = $2`,
		superAdmin, sessionID,
	)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func (store *SessionSQLStore) DeleteAuthSession(ctx context.Context, sessionID string) error {
	_, err := store.rwdb.ExecContext(
		ctx,
		`delete from auth_sessions where auth_session_id = $1`,
		sessionID,
	)
	return err
}

func (store *SessionSQLStore) DeleteAuthSessionsByUserID(ctx context.Context, userID int64) error {
	_, err := store.rwdb.ExecContext(
		ctx,
		`delete from auth_sessions
		where auth_session_user_id = $1`,
		userID,
	)
	return err
}

func (store *SessionSQLStore) DeleteExpiredAuthSessions(
	ctx context.Context,
	now time.Time,
) (int64, error) {
	result, err := store.rwdb.ExecContext(
		ctx,
		`delete from auth_sessions where auth_session_expires < $1`,
		now,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
