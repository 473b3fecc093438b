package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/haatos/simple-lms/internal/mail"
	"github.com/haatos/simple-lms/internal/security"
	"github.com/haatos/simple-lms/internal/store"
	"github.com/haatos/simple-lms/internal/views"
	"go.uber.org/zap"
)

const (
	resetCodeMin = 100000
	resetCodeMax = 999999

	resetCodeSubject = "Password Reset Code"
)

type ResetCodeStore interface {
	ReadUserByEmail(context.Context, string) (*store.User, error)
	SetResetCode(context.Context, int64, string, time.Time) error
	RevokeResetCode(context.Context, int64, string) (bool, error)
	ConsumeResetCode(context.Context, int64, string, string) (bool, error)
}

type ResetCodeGenerator interface {
	GenerateResetCode() (string, error)
}

type SessionRevoker interface {
	EndUserSessions(context.Context, int64) error
}

// RandomCodeGen draws codes uniformly from [100000, 999999].
type RandomCodeGen struct{}

func NewRandomCodeGen() *RandomCodeGen {
	return &RandomCodeGen{}
}

func (g *RandomCodeGen) GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(resetCodeMax-resetCodeMin+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+resetCodeMin), nil
}

type ResetCodeService struct {
	store    ResetCodeStore
	hasher   security.PasswordHasher
	mailer   mail.Mailer
	codeGen  ResetCodeGenerator
	sessions SessionRevoker
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewResetCodeService(
	store ResetCodeStore,
	hasher security.PasswordHasher,
	mailer mail.Mailer,
	codeGen ResetCodeGenerator,
	sessions SessionRevoker,
	ttl time.Duration,
	logger *zap.Logger,
) *ResetCodeService {
	return &ResetCodeService{
		store:    store,
		hasher:   hasher,
		mailer:   mailer,
		codeGen:  codeGen,
		sessions: sessions,
		ttl:      ttl,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// IssueResetCode stores a fresh code for the user registered with email and
// mails it. A new code replaces any outstanding one. When the mail can not
// be sent the code is revoked again and ErrMailDispatch is returned.
func (s *ResetCodeService) IssueResetCode(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := requireFields("email", email); err != nil {
		return err
	}
	u, err := s.readUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := s.codeGen.GenerateResetCode()
	if err != nil {
		return err
	}
	if err := s.store.SetResetCode(ctx, u.UserID, code, s.now().Add(s.ttl)); err != nil {
		return err
	}

	if err := s.sendResetCode(ctx, u, code); err != nil {
		s.logger.Error("err sending reset code",
			zap.Int64("user_id", u.UserID),
			zap.Error(err),
		)
		if _, revokeErr := s.store.RevokeResetCode(
			context.WithoutCancel(ctx), u.UserID, code,
		); revokeErr != nil {
			s.logger.Error("err revoking undelivered reset code",
				zap.Int64("user_id", u.UserID),
				zap.Error(revokeErr),
			)
		}
		return fmt.Errorf("%w: %w", ErrMailDispatch, err)
	}
	return nil
}

func (s *ResetCodeService) sendResetCode(ctx context.Context, u *store.User, code string) error {
	html, err := views.RenderString(ctx, views.ResetCodeEmail(u.Username, code, s.ttl))
	if err != nil {
		return err
	}
	return s.mailer.Send(ctx, mail.Message{
		To:      u.Email,
		Subject: resetCodeSubject,
		Text:    views.ResetCodeText(u.Username, code, s.ttl),
		HTML:    html,
	})
}

// ResetPassword sets newPassword when code matches the outstanding code of
// the user exactly and has not expired. The code is consumed in the same
// update, so a replay fails with ErrInvalidCode. All sessions of the user
// are ended afterwards.
func (s *ResetCodeService) ResetPassword(
	ctx context.Context,
	email, code, newPassword string,
) error {
	email = strings.TrimSpace(email)
	if err := requireFields(
		"email", email,
		"code", code,
		"new_password", newPassword,
	); err != nil {
		return err
	}
	u, err := s.readUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	if !u.HasResetCode() ||
		subtle.ConstantTimeCompare([]byte(*u.ResetCode), []byte(code)) != 1 {
		return ErrInvalidCode
	}
	if s.now().After(*u.ResetCodeExpiry) {
		return ErrExpiredCode
	}

	hash, err := hashPassword(s.hasher, newPassword)
	if err != nil {
		return err
	}
	consumed, err := s.store.ConsumeResetCode(ctx, u.UserID, code, hash)
	if err != nil {
		return err
	}
	if !consumed {
		return ErrInvalidCode
	}

	if err := s.sessions.EndUserSessions(ctx, u.UserID); err != nil {
		s.logger.Warn("err ending sessions after password reset",
			zap.Int64("user_id", u.UserID),
			zap.Error(err),
		)
	}
	return nil
}

func (s *ResetCodeService) readUserByEmail(ctx context.Context, email string) (*store.User, error) {
	u, err := s.store.ReadUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
