package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionExpired is returned when a session is created with an expiry
// that has already passed.
var ErrSessionExpired = errors.New("session expiry is in the past")

const (
	redisSessionPrefix     = "lms:session:"
	redisUserSessionPrefix = "lms:user-sessions:"
)

// SessionRedisStore keeps sessions in redis with the session expiry as the
// key TTL. Missing sessions are reported as sql.ErrNoRows so callers can
// treat both backends alike.
type SessionRedisStore struct {
	rdb *redis.Client
}

func NewSessionRedisStore(rdb *redis.Client) *SessionRedisStore {
	return &SessionRedisStore{rdb: rdb}
}

func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func sessionKey(sessionID string) string {
	return redisSessionPrefix + sessionID
}

func userSessionsKey(userID int64) string {
	return redisUserSessionPrefix + strconv.FormatInt(userID, 10)
}

func (store *SessionRedisStore) CreateAuthSession(ctx context.Context, as *AuthSession) error {
	b, err := json.Marshal(as)
	if err != nil {
		return err
	}
	ttl := time.Until(as.AuthSessionExpires)
	if ttl <= 0 {
		return ErrSessionExpired
	}

	pipe := store.rdb.TxPipeline()
	pipe.Set(ctx, sessionKey(as.AuthSessionID), b, ttl)
	if as.AuthSessionUserID != nil {
		key := userSessionsKey(*as.AuthSessionUserID)
		pipe.SAdd(ctx, key, as.AuthSessionID)
		pipe.ExpireGT(ctx, key, ttl)
		pipe.ExpireNX(ctx, key, ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (store *SessionRedisStore) ReadAuthSession(
	ctx context.Context,
	sessionID string,
) (*AuthSession, error) {
	b, err := store.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	as := new(AuthSession)
	if err := json.Unmarshal(b, as); err != nil {
		return nil, err
	}
	return as, nil
}

func (store *SessionRedisStore) UpdateAuthSessionSuperAdmin(
	ctx context.Context,
	sessionID string,
	superAdmin bool,
) error {
	as, err := store.ReadAuthSession(ctx, sessionID)
	if err != nil {
		return err
	}
	as.AuthSessionSuperAdmin = superAdmin
	b, err := json.Marshal(as)
	if err != nil {
		return err
	}
	err = store.rdb.SetArgs(ctx, sessionKey(sessionID), b, redis.SetArgs{
		Mode:    "XX",
		KeepTTL: true,
	}).Err()
	if errors.Is(err, redis.Nil) {
		return sql.ErrNoRows
	}
	return err
}

func (store *SessionRedisStore) DeleteAuthSession(ctx context.Context, sessionID string) error {
	as, err := store.ReadAuthSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}
	pipe := store.rdb.TxPipeline()
	pipe.Del(ctx, sessionKey(sessionID))
	if as.AuthSessionUserID != nil {
		pipe.SRem(ctx, userSessionsKey(*as.AuthSessionUserID), sessionID)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (store *SessionRedisStore) DeleteAuthSessionsByUserID(ctx context.Context, userID int64) error {
	key := userSessionsKey(userID)
	ids, err := store.rdb.SMembers(ctx, key).Result()
	if err != nil {
		return err
	}
	pipe := store.rdb.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, sessionKey(id))
	}
	pipe.Del(ctx, key)
	_, err = pipe.Exec(ctx)
	return err
}

// DeleteExpiredAuthSessions is a no-op; redis expires session keys itself.
func (store *SessionRedisStore) DeleteExpiredAuthSessions(
	ctx context.Context,
	now time.Time,
) (int64, error) {
	return 0, nil
}
