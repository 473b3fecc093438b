package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/haatos/simple-lms/internal/store"
	"go.uber.org/zap"
)

type SessionStore interface {
	CreateAuthSession(context.Context, *store.AuthSession) error
	ReadAuthSession(context.Context, string) (*store.AuthSession, error)
	UpdateAuthSessionSuperAdmin(context.Context, string, bool) error
	DeleteAuthSession(context.Context, string) error
	DeleteAuthSessionsByUserID(context.Context, int64) error
	DeleteExpiredAuthSessions(context.Context, time.Time) (int64, error)
}

// SessionAttrs is the state a new session starts with.
type SessionAttrs struct {
	UserID     *int64
	Role       string
	SuperAdmin bool
}

type SessionService struct {
	sessionStore SessionStore
	expires      time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

func NewSessionService(
	sessionStore SessionStore,
	expires time.Duration,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		sessionStore: sessionStore,
		expires:      expires,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// StartSession creates a new session, deleting prior first so a client
// never holds more than one.
func (s *SessionService) StartSession(
	ctx context.Context,
	prior *store.AuthSession,
	attrs SessionAttrs,
) (*store.AuthSession, error) {
	if prior != nil {
		if err := s.sessionStore.DeleteAuthSession(ctx, prior.AuthSessionID); err != nil {
			return nil, err
		}
	}
	as := &store.AuthSession{
		AuthSessionID:         generateRandomSessionID(),
		AuthSessionUserID:     attrs.UserID,
		AuthSessionRole:       attrs.Role,
		AuthSessionSuperAdmin: attrs.SuperAdmin,
		AuthSessionExpires:    s.now().Add(s.expires),
	}
	if err := s.sessionStore.CreateAuthSession(ctx, as); err != nil {
		return nil, err
	}
	return as, nil
}

// GetSession returns ErrSessionNotFound for unknown and expired sessions.
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*store.AuthSession, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}
	as, err := s.sessionStore.ReadAuthSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if as.Expired(s.now()) {
		if err := s.sessionStore.DeleteAuthSession(ctx, sessionID); err != nil {
			s.logger.Warn("err deleting expired session", zap.Error(err))
		}
		return nil, ErrSessionNotFound
	}
	return as, nil
}

// EndSession destroys as. Ending a nil session is a no-op.
func (s *SessionService) EndSession(ctx context.Context, as *store.AuthSession) error {
	if as == nil {
		return nil
	}
	return s.sessionStore.DeleteAuthSession(ctx, as.AuthSessionID)
}

func (s *SessionService) EndUserSessions(ctx context.Context, userID int64) error {
	return s.sessionStore.DeleteAuthSessionsByUserID(ctx, userID)
}

func (s *SessionService) SetSuperAdmin(
	ctx context.Context,
	as *store.AuthSession,
	superAdmin bool,
) error {
	if as == nil {
		return ErrSessionNotFound
	}
	if err := s.sessionStore.UpdateAuthSessionSuperAdmin(ctx, as.AuthSessionID, superAdmin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSessionNotFound
		}
		return err
	}
	as.AuthSessionSuperAdmin = superAdmin
	return nil
}

func (s *SessionService) RemoveExpired(ctx context.Context) (int64, error) {
	return s.sessionStore.DeleteExpiredAuthSessions(ctx, s.now())
}

func (s *SessionService) ScheduleCleanUp(scheduler gocron.Scheduler) error {
	_, err := scheduler.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			n, err := s.RemoveExpired(ctx)
			if err != nil {
				s.logger.Error("err deleting expired sessions", zap.Error(err))
				return
			}
			if n > 0 {
				s.logger.Info("deleted expired sessions", zap.Int64("count", n))
			}
		}),
	)
	return err
}

func generateRandomSessionID() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
