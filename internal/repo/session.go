package repo

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/mystore/storefront/internal/models"
)

const SessionTTL = 24 * time.Hour

func newSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// tokenHash keys the digest with the session secret so a leaked sessions
// table is useless without the process configuration.
func (r *GormRepo) tokenHash(token string) string {
	mac := hmac.New(sha256.New, r.SessionSecret)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

// CreateSession mints a fresh opaque token for the user and persists its
// hash. The raw token is returned exactly once, for the cookie.
func (r *GormRepo) CreateSession(ctx context.Context, userID uint) (string, error) {
	token, err := newSessionToken()
	if err != nil {
		return "", fmt.Errorf("cannot create session token: %w", err)
	}

	session := models.Session{
		TokenHash: r.tokenHash(token),
		UserID:    userID,
		ExpiresAt: time.Now().Add(SessionTTL).Unix(),
	}
	if err := r.DB.WithContext(ctx).Create(&session).Error; err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}

	return token, nil
}

// ResolveSession maps a client token to a user id. It never fails: anything
// malformed, unknown or expired resolves to anonymous.
func (r *GormRepo) ResolveSession(ctx context.Context, token string) (uint, bool) {
	if token == "" {
		return 0, false
	}

	var session models.Session
	if err := r.DB.WithContext(ctx).
		Where("token_hash = ?", r.tokenHash(token)).
		First(&session).Error; err != nil {
		return 0, false
	}

	if time.Now().Unix() > session.ExpiresAt {
		r.DB.WithContext(ctx).Delete(&models.Session{}, session.ID)
		return 0, false
	}

	return session.UserID, true
}

func (r *GormRepo) DeleteSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	err := r.DB.WithContext(ctx).
		Where("token_hash = ?", r.tokenHash(token)).
		Delete(&models.Session{}).Error
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
