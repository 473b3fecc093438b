package testutil

import (
	"context"
	"time"

	"github.com/haatos/simple-lms/internal/store"
	"github.com/stretchr/testify/mock"
)

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) CreateUser(ctx context.Context, nu *store.NewUser) (*store.User, error) {
	args := m.Called(ctx, nu)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.User), args.Error(1)
}

func (m *MockUserStore) ReadUserByID(ctx context.Context, userID int64) (*store.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.User), args.Error(1)
}

func (m *MockUserStore) ReadUserByEmail(ctx context.Context, email string) (*store.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.User), args.Error(1)
}

func (m *MockUserStore) ReadUserByIdentifier(
	ctx context.Context,
	identifier string,
) (*store.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.User), args.Error(1)
}

func (m *MockUserStore) ListUsers(ctx context.Context) ([]*store.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.User), args.Error(1)
}

func (m *MockUserStore) UpdateUserRole(ctx context.Context, userID int64, role string) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *MockUserStore) UpdateUserPassword(
	ctx context.Context,
	userID int64,
	passwordHash string,
) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserStore) SetResetCode(
	ctx context.Context,
	userID int64,
	code string,
	expiry time.Time,
) error {
	args := m.Called(ctx, userID, code, expiry)
	return args.Error(0)
}

func (m *MockUserStore) RevokeResetCode(
	ctx context.Context,
	userID int64,
	code string,
) (bool, error) {
	args := m.Called(ctx, userID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) ConsumeResetCode(
	ctx context.Context,
	userID int64,
	code, passwordHash string,
) (bool, error) {
	args := m.Called(ctx, userID, code, passwordHash)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) CreateLoginAttempt(
	ctx context.Context,
	attempt *store.LoginAttempt,
) (*store.LoginAttempt, error) {
	args := m.Called(ctx, attempt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.LoginAttempt), args.Error(1)
}

func (m *MockUserStore) ListLoginHistory(
	ctx context.Context,
	userID int64,
	limit int,
) ([]*store.LoginAttempt, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.LoginAttempt), args.Error(1)
}
