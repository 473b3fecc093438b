package testutil

import (
	"context"
	"time"

	"github.com/haatos/simple-lms/internal/store"
	"github.com/stretchr/testify/mock"
)

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) CreateAuthSession(ctx context.Context, as *store.AuthSession) error {
	args := m.Called(ctx, as)
	return args.Error(0)
}

func (m *MockSessionStore) ReadAuthSession(
	ctx context.Context,
	sessionID string,
) (*store.AuthSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.AuthSession), args.Error(1)
}

func (m *MockSessionStore) UpdateAuthSessionSuperAdmin(
	ctx context.Context,
	sessionID string,
	superAdmin bool,
) error {
	args := m.Called(ctx, sessionID, superAdmin)
	return args.Error(0)
}

func (m *MockSessionStore) DeleteAuthSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockSessionStore) DeleteAuthSessionsByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockSessionStore) DeleteExpiredAuthSessions(
	ctx context.Context,
	now time.Time,
) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
