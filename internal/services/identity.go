// Package services contains the QuickJobs application services.
// This file defines the identity service: signup, login, logout and the
// re-validated current session.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cpower013/quickjobs-site-1/internal/auth"
	"github.com/cpower013/quickjobs-site-1/internal/common"
	"github.com/cpower013/quickjobs-site-1/internal/kvstore"
	"github.com/cpower013/quickjobs-site-1/internal/logging"
	"github.com/cpower013/quickjobs-site-1/internal/models"
	"github.com/cpower013/quickjobs-site-1/internal/repositories/accounts"
	"github.com/cpower013/quickjobs-site-1/internal/repositories/sessions"
)

// IdentityService manages accounts and the current-session slot.
//
// Contract:
//   - Signup: create an account with a unique email and sign it in.
//   - Login: verify credentials and replace the session slot.
//   - Logout: clear the session slot; a no-op when already signed out.
//   - CurrentSession: the signed-in session, verified against its token and
//     the account it names; a stale slot is cleared.
type IdentityService interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	Signup(ctx context.Context, name, email, password string) (models.Session, error)
	Login(ctx context.Context, email, password string) (models.Session, error)
	Logout(ctx context.Context) error
	CurrentSession(ctx context.Context) (*models.Session, error)
}

type identityService struct {
	kv       *kvstore.Store
	accounts accounts.Repository
	sessions sessions.Repository
	tokens   *auth.Tokens
	log      logging.Logger
}

func NewIdentityService(kv *kvstore.Store, tokens *auth.Tokens, log logging.Logger) IdentityService {
	return &identityService{
		kv:       kv,
		accounts: accounts.NewKVRepository(kv),
		sessions: sessions.NewKVRepository(kv),
		tokens:   tokens,
		log:      log,
	}
}

func (s *identityService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return s.accounts.List(ctx), nil
}

func (s *identityService) newSession(a models.Account) (models.Session, error) {
	token, err := s.tokens.Generate(a.ID, a.Email)
	if err != nil {
		return models.Session{}, err
	}
	return models.Session{ID: a.ID, Name: a.Name, Email: a.Email, Token: token}, nil
}

// Signup stores the account and its session in a single batch write.
func (s *identityService) Signup(ctx context.Context, name, email, password string) (models.Session, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return models.Session{}, common.ErrValidationIncomplete
	}

	list := s.accounts.List(ctx)
	for _, a := range list {
		if a.Email == email {
			return models.Session{}, common.ErrEmailTaken
		}
	}

	acc := models.Account{
		ID:       newID(accountIDPrefix),
		Name:     name,
		Email:    email,
		Password: auth.HashPassword(password),
	}

	sess, err := s.newSession(acc)
	if err != nil {
		return models.Session{}, fmt.Errorf("signup: %w", err)
	}

	err = s.kv.SetMany(ctx, map[string]any{
		common.KeyAccounts: append(list, acc),
		common.KeySession:  sess,
	})
	if err != nil {
		return models.Session{}, fmt.Errorf("signup: %w", err)
	}

	s.log.Info(ctx, "account created", "account", acc.ID)
	return sess, nil
}

func (s *identityService) Login(ctx context.Context, email, password string) (models.Session, error) {
	acc, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return models.Session{}, common.ErrInvalidCredentials
	}

	ok, err := auth.VerifyPassword(acc.Password, password)
	if err != nil {
		s.log.Warn(ctx, "stored password hash unreadable", "account", acc.ID, "err", err)
		return models.Session{}, common.ErrInvalidCredentials
	}
	if !ok {
		return models.Session{}, common.ErrInvalidCredentials
	}

	sess, err := s.newSession(*acc)
	if err != nil {
		return models.Session{}, fmt.Errorf("login: %w", err)
	}
	if err := s.sessions.Set(ctx, sess); err != nil {
		return models.Session{}, fmt.Errorf("login: %w", err)
	}

	s.log.Info(ctx, "signed in", "account", acc.ID)
	return sess, nil
}

func (s *identityService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *identityService) CurrentSession(ctx context.Context) (*models.Session, error) {
	sess := s.sessions.Get(ctx)
	if sess == nil {
		return nil, nil
	}

	if reason := s.verify(ctx, sess); reason != nil {
		s.log.Info(ctx, "discarding stale session", "account", sess.ID, "reason", reason)
		if err := s.sessions.Clear(ctx); err != nil {
			s.log.Error(ctx, "failed to clear session", "err", err)
		}
		return nil, common.ErrInvalidSession
	}
	return sess, nil
}

// verify returns why sess cannot be trusted, or nil.
func (s *identityService) verify(ctx context.Context, sess *models.Session) error {
	claims, err := s.tokens.Parse(sess.Token)
	if err != nil {
		return err
	}
	if claims.Subject != sess.ID || claims.Email != sess.Email {
		return errors.New("token does not match session")
	}

	acc, err := s.accounts.FindByID(ctx, sess.ID)
	if err != nil {
		return fmt.Errorf("account: %w", err)
	}
	if acc.Email != sess.Email || acc.Name != sess.Name {
		return errors.New("account does not match session")
	}
	return nil
}
