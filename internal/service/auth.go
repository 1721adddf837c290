package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mystore/storefront/internal/domain"
	"github.com/mystore/storefront/internal/hash"
	"github.com/mystore/storefront/internal/logging"
	"github.com/mystore/storefront/internal/models"
	"github.com/mystore/storefront/internal/mykafka"
	"github.com/mystore/storefront/internal/repo"
	"github.com/mystore/storefront/internal/transport"
)

// SessionCookie is the name of the cookie that carries the opaque session
// token. HttpOnly, so the client can never script-access it.
const SessionCookie = "session_token"

// dummyHash is compared against when the email is unknown so that a failed
// login costs the same whether or not the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

func (s *AuthService) publish(ctx context.Context, key string, event map[string]any) {
	if s.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(ctx, "user_events", key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "error", err)
	}
}

// SignUp creates a regular user. The role is fixed here: sign-up can never
// mint an admin.
func (s *AuthService) SignUp(ctx context.Context, req transport.SignUpRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.sign_up")

	user := models.User{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Role:     models.RoleUser,
	}

	created, err := s.Repo.CreateUser(ctx, &user, req.Password)
	if err != nil {
		l.Warn("sign_up_failed", "reason", "cannot create user", "error", err)
		return nil, err
	}

	s.publish(ctx, fmt.Sprint(created.ID), map[string]any{
		"type":     "user_registered",
		"userID":   created.ID,
		"username": created.Username,
	})

	l.Info("sign_up_success", "userID", created.ID)
	return created, nil
}

// Login verifies the credentials and establishes a session. The failure is
// uniform: an unknown email and a wrong password are indistinguishable to
// the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.FindByEmailWithCredential(ctx, email)
	if err != nil {
		l.Error("login_failed", "reason", "db error", "error", err)
		return "", nil, err
	}
	if user == nil {
		hash.CheckPassword(dummyHash, password)
		l.Warn("login_failed", "reason", "invalid credentials")
		return "", nil, domain.ErrInvalidCredentials
	}
	if !s.Repo.VerifyPassword(password, user.PasswordHash) {
		l.Warn("login_failed", "reason", "invalid credentials")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.Repo.CreateSession(ctx, user.ID)
	if err != nil {
		l.Error("login_failed", "reason", "cannot create session", "error", err)
		return "", nil, err
	}

	s.publish(ctx, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})

	user.PasswordHash = ""
	l.Info("login_success", "userID", user.ID)
	return token, user, nil
}

// LogOut invalidates the server-side session. The caller clears the cookie
// regardless of the outcome here.
func (s *AuthService) LogOut(ctx context.Context, token string) error {
	return s.Repo.DeleteSession(ctx, token)
}

// Identify resolves a session token to a user. Anything that does not map to
// an existing user resolves to anonymous (nil), never to an error.
func (s *AuthService) Identify(ctx context.Context, token string) *models.User {
	userID, ok := s.Repo.ResolveSession(ctx, token)
	if !ok {
		return nil
	}
	user, err := s.Repo.FindUserByID(ctx, userID)
	if err != nil || user == nil {
		return nil
	}
	return user
}
