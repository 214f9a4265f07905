package auth

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PasinduAnjana/Studentscope-sub000/models"
)

type fakeSessionRepo struct {
	rows      map[string]models.Session
	users     map[uint]models.User
	insertErr error
	findErr   error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		rows:  map[string]models.Session{},
		users: map[uint]models.User{},
	}
}

func (f *fakeSessionRepo) Insert(_ context.Context, s *models.Session) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.rows[s.Token] = *s
	return nil
}

func (f *fakeSessionRepo) FindByToken(_ context.Context, token string) (*models.Session, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	row, ok := f.rows[token]
	if !ok {
		return nil, nil
	}
	row.User = f.users[row.UserID]
	return &row, nil
}

func (f *fakeSessionRepo) DeleteByToken(_ context.Context, token string) error {
	delete(f.rows, token)
	return nil
}

func (f *fakeSessionRepo) DeleteExpired(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for token, row := range f.rows {
		if !row.ExpiresAt.After(cutoff) {
			delete(f.rows, token)
			n++
		}
	}
	return n, nil
}

func TestSessionCreateAndGet(t *testing.T) {
	repo := newFakeSessionRepo()
	sid := uint(7)
	repo.users[1] = models.User{ID: 1, Username: "somchai", Role: models.RoleStudent, StudentID: &sid}
	s := NewSessions(repo, time.Hour)

	token, err := s.Create(context.Background(), &models.User{ID: 1})
	require.NoError(t, err)

	assert.Len(t, token, 64, "token must be 32 bytes hex-encoded")
	_, err = hex.DecodeString(token)
	assert.NoError(t, err)

	info, err := s.Get(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, uint(1), info.UserID)
	assert.Equal(t, "somchai", info.Username)
	assert.Equal(t, models.RoleStudent, info.Role)
	require.NotNil(t, info.StudentID)
	assert.Equal(t, sid, *info.StudentID)
}

func TestSessionTokensUnique(t *testing.T) {
	repo := newFakeSessionRepo()
	s := NewSessions(repo, time.Hour)

	t1, err := s.Create(context.Background(), &models.User{ID: 1})
	require.NoError(t, err)
	t2, err := s.Create(context.Background(), &models.User{ID: 1})
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
	assert.Len(t, repo.rows, 2, "each login gets its own session row")
}

func TestSessionGetUnknownToken(t *testing.T) {
	s := NewSessions(newFakeSessionRepo(), time.Hour)

	info, err := s.Get(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.Nil(t, info)

	info, err = s.Get(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestSessionLazyExpiry(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.users[1] = models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}
	s := NewSessions(repo, time.Hour)

	current := time.Now()
	s.now = func() time.Time { return current }

	token, err := s.Create(context.Background(), &models.User{ID: 1})
	require.NoError(t, err)

	info, err := s.Get(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, info)

	// Past the TTL the token resolves to nothing and the row is dropped.
	current = current.Add(time.Hour + time.Second)
	info, err = s.Get(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, info)
	assert.Empty(t, repo.rows, "expired row is deleted on read")

	// A repeat read after the delete behaves the same.
	info, err = s.Get(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestSessionDestroyIdempotent(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.users[1] = models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}
	s := NewSessions(repo, time.Hour)

	token, err := s.Create(context.Background(), &models.User{ID: 1})
	require.NoError(t, err)

	require.NoError(t, s.Destroy(context.Background(), token))
	info, err := s.Get(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, info)

	require.NoError(t, s.Destroy(context.Background(), token))
	require.NoError(t, s.Destroy(context.Background(), ""))
}

func TestSessionCreateStorageFailure(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.insertErr = errors.New("disk full")
	s := NewSessions(repo, time.Hour)

	_, err := s.Create(context.Background(), &models.User{ID: 1})
	assert.ErrorIs(t, err, ErrSessionCreation)
}

func TestSessionGetStorageFailure(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.findErr = errors.New("connection reset")
	s := NewSessions(repo, time.Hour)

	_, err := s.Get(context.Background(), "deadbeef")
	assert.Error(t, err)
}

func TestSessionCleanupExpired(t *testing.T) {
	repo := newFakeSessionRepo()
	s := NewSessions(repo, time.Hour)

	current := time.Now()
	s.now = func() time.Time { return current }

	_, err := s.Create(context.Background(), &models.User{ID: 1})
	require.NoError(t, err)
	_, err = s.Create(context.Background(), &models.User{ID: 2})
	require.NoError(t, err)

	keep, err := s.Create(context.Background(), &models.User{ID: 3})
	require.NoError(t, err)
	row := repo.rows[keep]
	row.ExpiresAt = current.Add(48 * time.Hour)
	repo.rows[keep] = row

	current = current.Add(2 * time.Hour)
	n, err := s.CleanupExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Len(t, repo.rows, 1)
	assert.Contains(t, repo.rows, keep)
}

func TestSessionDefaultTTL(t *testing.T) {
	s := NewSessions(newFakeSessionRepo(), 0)
	assert.Equal(t, DefaultSessionTTL, s.TTL())

	s = NewSessions(newFakeSessionRepo(), 2*time.Hour)
	assert.Equal(t, 2*time.Hour, s.TTL())
}
