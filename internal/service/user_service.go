package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/haatos/simple-lms/internal/security"
	"github.com/haatos/simple-lms/internal/storage"
	"github.com/haatos/simple-lms/internal/store"
	"go.uber.org/zap"
)

const maxLoginHistory = 100

type UserWriter interface {
	CreateUser(context.Context, *store.NewUser) (*store.User, error)
	UpdateUserRole(context.Context, int64, string) error
	UpdateUserPassword(context.Context, int64, string) error
	CreateLoginAttempt(context.Context, *store.LoginAttempt) (*store.LoginAttempt, error)
}

type UserReader interface {
	ReadUserByID(context.Context, int64) (*store.User, error)
	ReadUserByIdentifier(context.Context, string) (*store.User, error)
	ListUsers(context.Context) ([]*store.User, error)
	ListLoginHistory(context.Context, int64, int) ([]*store.LoginAttempt, error)
}

type UserStore interface {
	UserWriter
	UserReader
}

type RegisterParams struct {
	Username string
	Email    string
	Password string
	Profile  store.UserProfile
	Image    *Upload
}

// LoginMeta describes where a login attempt came from.
type LoginMeta struct {
	IPAddress string
	UserAgent string
}

type UserService struct {
	userStore UserStore
	hasher    security.PasswordHasher
	files     storage.Storage
	logger    *zap.Logger
	now       func() time.Time
}

func NewUserService(
	userStore UserStore,
	hasher security.PasswordHasher,
	files storage.Storage,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userStore: userStore,
		hasher:    hasher,
		files:     files,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a user with the default role. Duplicate usernames and
// emails are reported as ErrDuplicateUsername and ErrDuplicateEmail.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (*store.User, error) {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.TrimSpace(p.Email)
	if err := requireFields(
		"username", p.Username,
		"email", p.Email,
		"password", p.Password,
	); err != nil {
		return nil, err
	}

	hash, err := hashPassword(s.hasher, p.Password)
	if err != nil {
		return nil, err
	}
	imageName, err := saveUpload(ctx, s.files, UserImageFolder, p.Image)
	if err != nil {
		return nil, err
	}
	p.Profile.ImageFilename = imageName

	u, err := s.userStore.CreateUser(ctx, &store.NewUser{
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: hash,
		Role:         store.RoleUser,
		UserProfile:  p.Profile,
	})
	if err != nil {
		deleteUpload(ctx, s.files, s.logger, imageName)
		return nil, duplicateUserError(err)
	}
	return u, nil
}

// hashPassword reports passwords the hasher refuses as ErrInvalidInput.
func hashPassword(hasher security.PasswordHasher, password string) (string, error) {
	hash, err := hasher.Hash(password)
	if errors.Is(err, security.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return hash, err
}

func duplicateUserError(err error) error {
	var dupErr *store.DuplicateKeyError
	if !errors.As(err, &dupErr) {
		return err
	}
	switch dupErr.Field {
	case "username":
		return ErrDuplicateUsername
	case "email":
		return ErrDuplicateEmail
	default:
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
}

// Login verifies identifier (username or email) and password. Unknown users
// and wrong passwords both yield ErrInvalidCredentials. Attempts against an
// existing user are recorded in the login history.
func (s *UserService) Login(
	ctx context.Context,
	identifier, password string,
	meta LoginMeta,
) (*store.User, error) {
	identifier = strings.TrimSpace(identifier)
	if err := requireFields("identifier", identifier, "password", password); err != nil {
		return nil, err
	}

	u, err := s.userStore.ReadUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok := s.hasher.Verify(password, u.PasswordHash)
	s.recordLoginAttempt(ctx, u.UserID, ok, meta)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) recordLoginAttempt(
	ctx context.Context,
	userID int64,
	success bool,
	meta LoginMeta,
) {
	if _, err := s.userStore.CreateLoginAttempt(ctx, &store.LoginAttempt{
		LoginHistoryUserID: userID,
		LoginTime:          s.now(),
		IPAddress:          meta.IPAddress,
		UserAgent:          meta.UserAgent,
		Success:            success,
	}); err != nil {
		s.logger.Warn("err recording login attempt",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}

func (s *UserService) GetUserByID(ctx context.Context, userID int64) (*store.User, error) {
	u, err := s.userStore.ReadUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// ChangePassword replaces the password of userID after verifying current.
func (s *UserService) ChangePassword(
	ctx context.Context,
	userID int64,
	current, newPassword string,
) error {
	if err := requireFields(
		"current_password", current,
		"new_password", newPassword,
	); err != nil {
		return err
	}

	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(current, u.PasswordHash) {
		return ErrInvalidCredentials
	}
	hash, err := hashPassword(s.hasher, newPassword)
	if err != nil {
		return err
	}
	return s.userStore.UpdateUserPassword(ctx, u.UserID, hash)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*store.User, error) {
	users, err := s.userStore.ListUsers(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return users, nil
}

func (s *UserService) UpdateUserRole(ctx context.Context, userID int64, role string) error {
	if !slices.Contains(store.ListRoles(), role) {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	if err := s.userStore.UpdateUserRole(ctx, userID, role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *UserService) ListLoginHistory(
	ctx context.Context,
	userID int64,
	limit int,
) ([]*store.LoginAttempt, error) {
	if limit <= 0 || limit > maxLoginHistory {
		limit = maxLoginHistory
	}
	return s.userStore.ListLoginHistory(ctx, userID, limit)
}
