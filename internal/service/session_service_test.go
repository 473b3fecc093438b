package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/haatos/simple-lms/internal/store"
	"github.com/haatos/simple-lms/internal/testutil"
	"github.com/haatos/simple-lms/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestSessionService_StartSession(t *testing.T) {
	t.Run("success - prior session is replaced", func(t *testing.T) {
		// arrange
		mockStore := new(testutil.MockSessionStore)
		svc := NewSessionService(mockStore, time.Hour, zap.NewNop())
		prior := &store.AuthSession{AuthSessionID: "prior"}
		mockStore.On("DeleteAuthSession", context.Background(), "prior").Return(nil)
		mockStore.On("CreateAuthSession", context.Background(), mock.AnythingOfType("*store.AuthSession")).
			Return(nil)

		// act
		as, err := svc.StartSession(context.Background(), prior, SessionAttrs{
			UserID: util.AsPtr(int64(7)),
			Role:   store.RoleUser,
		})

		// assert
		assert.NoError(t, err)
		assert.NotEqual(t, "prior", as.AuthSessionID)
		assert.Len(t, as.AuthSessionID, 43)
		assert.Equal(t, int64(7), *as.AuthSessionUserID)
		assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), as.AuthSessionExpires, 5*time.Second)
		mockStore.AssertExpectations(t)
	})
	t.Run("success - session ids are unique", func(t *testing.T) {
		// arrange
		mockStore := new(testutil.MockSessionStore)
		svc := NewSessionService(mockStore, time.Hour, zap.NewNop())
		mockStore.On("CreateAuthSession", context.Background(), mock.Anything).Return(nil)

		// act
		first, _ := svc.StartSession(context.Background(), nil, SessionAttrs{})
		second, _ := svc.StartSession(context.Background(), nil, SessionAttrs{})

		// assert
		assert.NotEqual(t, first.AuthSessionID, second.AuthSessionID)
	})
	t.Run("failure - store error", func(t *testing.T) {
		// arrange
		mockStore := new(testutil.MockSessionStore)
		svc := NewSessionService(mockStore, time.Hour, zap.NewNop())
		mockStore.On("CreateAuthSession", context.Background(), mock.Anything).
			Return(errors.New("store error"))

		// act
		as, err := svc.StartSession(context.Background(), nil, SessionAttrs{})

		// assert
		assert.Error(t, err)
		assert.Nil(t, as)
	})
}

func TestSessionService_GetSession(t *testing.T) {
	t.Run("success - valid session is returned", func(t *testing.T) {
		// arrange
		mockStore := new(testutil.MockSessionStore)
		svc := NewSessionService(mockStore, time.Hour, zap.NewNop())
		expected := &store.AuthSession{
			AuthSessionID:      "valid",
			AuthSessionExpires: time.Now().UTC().Add(time.Minute),
		}
		mockStore.On("ReadAuthSession", context.Background(), "valid").Return(expected, nil)

		// act
		as, err := svc.GetSession(context.Background(), "valid")

		// assert
		assert.NoError(t, err)
		assert.Equal(t, expected, as)
	})
	t.Run("failure - expired session is absent and deleted", func(t *testing.T) {
		// arrange
		mockStore := new(testutil.MockSessionStore)
		svc := NewSessionService(mockStore, time.Hour, zap.NewNop())
		mockStore.On("ReadAuthSession", context.Background(), "expired").Return(&store.AuthSession{
			AuthSessionID:      "expired",
			AuthSessionExpires: time.Now().UTC().Add(-time.Minute),
		}, nil)
		mockStore.On("DeleteAuthSession", context.Background(), "expired").Return(nil)

		// act
		as, err := svc.GetSession(context.Background(), "expired")

		// assert
		assert.ErrorIs(t, err, ErrSessionNotFound)
		assert.Nil(t, as)
		mockStore.AssertExpectations(t)
	})
	t.Run("failure - unknown and empty session ids", func(t *testing.T) {
		// arrange
		mockStore := new(testutil.MockSessionStore)
		svc := NewSessionService(mockStore, time.Hour, zap.NewNop())
		mockStore.On("ReadAuthSession", context.Background(), "unknown").Return(nil, sql.ErrNoRows)

		// act
		_, unknownErr := svc.GetSession(context.Background(), "unknown")
		_, emptyErr := svc.GetSession(context.Background(), "")

		// assert
		assert.ErrorIs(t, unknownErr, ErrSessionNotFound)
		assert.ErrorIs(t, emptyErr, ErrSessionNotFound)
		mockStore.AssertNumberOfCalls(t, "ReadAuthSession", 1)
	})
}

func TestSessionService_EndSession(t *testing.T) {
	t.Run("success - nil session is a no-op", func(t *testing.T) {
		mockStore := new(testutil.MockSessionStore)
		svc := NewSessionService(mockStore, time.Hour, zap.NewNop())
		assert.NoError(t, svc.EndSession(context.Background(), nil))
		mockStore.AssertNotCalled(t, "DeleteAuthSession", mock.Anything, mock.Anything)
	})
	t.Run("success - session is deleted", func(t *testing.T) {
		mockStore := new(testutil.MockSessionStore)
		svc := NewSessionService(mockStore, time.Hour, zap.NewNop())
		mockStore.On("DeleteAuthSession", context.Background(), "s").Return(nil)
		assert.NoError(t, svc.EndSession(context.Background(), &store.AuthSession{AuthSessionID: "s"}))
		mockStore.AssertExpectations(t)
	})
}

func TestSessionService_SetSuperAdmin(t *testing.T) {
	t.Run("success - flag is set on the session", func(t *testing.T) {
		// arrange
		mockStore := new(testutil.MockSessionStore)
		svc := NewSessionService(mockStore, time.Hour, zap.NewNop())
		as := &store.AuthSession{AuthSessionID: "s"}
		mockStore.On("UpdateAuthSessionSuperAdmin", context.Background(), "s", true).Return(nil)

		// act
		err := svc.SetSuperAdmin(context.Background(), as, true)

		// assert
		assert.NoError(t, err)
		assert.True(t, as.IsSuperAdmin())
	})
	t.Run("failure - session is gone", func(t *testing.T) {
		// arrange
		mockStore := new(testutil.MockSessionStore)
		svc := NewSessionService(mockStore, time.Hour, zap.NewNop())
		mockStore.On("UpdateAuthSessionSuperAdmin", context.Background(), "s", true).
			Return(sql.ErrNoRows)

		// act
		err := svc.SetSuperAdmin(context.Background(), &store.AuthSession{AuthSessionID: "s"}, true)

		// assert
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestSessionService_ScheduleCleanUp(t *testing.T) {
	t.Run("success - cleanup job is registered", func(t *testing.T) {
		// arrange
		scheduler, err := gocron.NewScheduler()
		assert.NoError(t, err)
		defer scheduler.Shutdown()
		svc := NewSessionService(new(testutil.MockSessionStore), time.Hour, zap.NewNop())

		// act
		err = svc.ScheduleCleanUp(scheduler)

		// assert
		assert.NoError(t, err)
		assert.Len(t, scheduler.Jobs(), 1)
	})
}
