// Package auth holds the credential and session core: password hashing,
// credential verification and opaque-token session lifecycle. It speaks to
// persistence only through the UserStore and SessionRepo interfaces and
// knows nothing about HTTP.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/PasinduAnjana/Studentscope-sub000/models"
)

const (
	tokenBytes = 32

	// DefaultSessionTTL is how long a freshly issued session stays valid.
	DefaultSessionTTL = 24 * time.Hour
)

// SessionRepo is the persistence surface for session rows. The session
// store is the only component that mutates them.
type SessionRepo interface {
	Insert(ctx context.Context, s *models.Session) error
	// FindByToken returns nil, nil for an unknown token. The owning user
	// is loaded alongside the row.
	FindByToken(ctx context.Context, token string) (*models.Session, error)
	// DeleteByToken is a no-op for tokens that do not exist.
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// SessionInfo is the resolved identity behind a valid token.
type SessionInfo struct {
	UserID    uint
	Username  string
	Role      string
	StudentID *uint
	ExpiresAt time.Time
}

// Sessions manages opaque server-side session tokens with a fixed TTL.
// Expiry is enforced lazily when a token is read; CleanupExpired exists
// only to reclaim space.
type Sessions struct {
	repo SessionRepo
	ttl  time.Duration
	now  func() time.Time
}

func NewSessions(repo SessionRepo, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{repo: repo, ttl: ttl, now: time.Now}
}

// TTL reports the configured session lifetime.
func (s *Sessions) TTL() time.Duration { return s.ttl }

// Create issues a fresh high-entropy token for the user and persists it.
// Failures wrap ErrSessionCreation and are fatal for the calling request.
func (s *Sessions) Create(ctx context.Context, user *models.User) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSessionCreation, err)
	}
	row := &models.Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.repo.Insert(ctx, row); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSessionCreation, err)
	}
	return token, nil
}

// Get resolves a token. Unknown tokens and expired sessions both come back
// as (nil, nil); an expired row is deleted on the way out, so a repeat Get
// for the same token is also nil.
func (s *Sessions) Get(ctx context.Context, token string) (*SessionInfo, error) {
	if token == "" {
		return nil, nil
	}
	row, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if row == nil {
		return nil, nil
	}
	if !row.ExpiresAt.After(s.now()) {
		_ = s.repo.DeleteByToken(ctx, token)
		return nil, nil
	}
	return &SessionInfo{
		UserID:    row.UserID,
		Username:  row.User.Username,
		Role:      row.User.Role,
		StudentID: row.User.StudentID,
		ExpiresAt: row.ExpiresAt,
	}, nil
}

// Destroy drops the session if it exists. Destroying an unknown token is
// not an error.
func (s *Sessions) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.repo.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// CleanupExpired bulk-deletes rows whose expiry has passed and returns how
// many were removed. Correctness never depends on it running.
func (s *Sessions) CleanupExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("cleanup sessions: %w", err)
	}
	return n, nil
}

func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
