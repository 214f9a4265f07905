package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PasinduAnjana/Studentscope-sub000/models"
)

type fakeUserStore struct {
	users map[string]*models.User
	err   error
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id uint) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) UpdateCredentials(_ context.Context, id uint, passwordHash, salt string) error {
	if f.err != nil {
		return f.err
	}
	for _, u := range f.users {
		if u.ID == id {
			u.PasswordHash = passwordHash
			u.Salt = salt
			return nil
		}
	}
	return errors.New("no such user")
}

func seedUser(t *testing.T, id uint, username, password, role string) *models.User {
	t.Helper()
	salt, err := GenerateSalt()
	require.NoError(t, err)
	hash, err := HashPassword(password, salt)
	require.NoError(t, err)
	return &models.User{ID: id, Username: username, PasswordHash: hash, Salt: salt, Role: role}
}

func TestAuthenticateSuccess(t *testing.T) {
	store := &fakeUserStore{users: map[string]*models.User{
		"admin": seedUser(t, 1, "admin", "123", models.RoleAdmin),
	}}
	a := NewAuthenticator(store)

	u, err := a.Authenticate(context.Background(), "admin", "123")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, uint(1), u.ID)
	assert.Equal(t, models.RoleAdmin, u.Role)
}

func TestAuthenticateBadCredentials(t *testing.T) {
	store := &fakeUserStore{users: map[string]*models.User{
		"admin": seedUser(t, 1, "admin", "123", models.RoleAdmin),
	}}
	a := NewAuthenticator(store)

	// Wrong password and unknown username must be indistinguishable.
	u, err := a.Authenticate(context.Background(), "admin", "wrong")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = a.Authenticate(context.Background(), "nobody", "123")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = a.Authenticate(context.Background(), "admin", "")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestAuthenticateStorageError(t *testing.T) {
	boom := errors.New("connection refused")
	a := NewAuthenticator(&fakeUserStore{err: boom})

	_, err := a.Authenticate(context.Background(), "admin", "123")
	assert.ErrorIs(t, err, boom)
}

func TestChangePasswordRotatesSalt(t *testing.T) {
	user := seedUser(t, 1, "admin", "123", models.RoleAdmin)
	oldSalt := user.Salt
	store := &fakeUserStore{users: map[string]*models.User{"admin": user}}
	a := NewAuthenticator(store)

	require.NoError(t, a.ChangePassword(context.Background(), 1, "123", "stronger"))

	assert.NotEqual(t, oldSalt, user.Salt, "password change must discard the old salt")

	u, err := a.Authenticate(context.Background(), "admin", "stronger")
	require.NoError(t, err)
	assert.NotNil(t, u)

	u, err = a.Authenticate(context.Background(), "admin", "123")
	require.NoError(t, err)
	assert.Nil(t, u, "old password must stop working")
}

func TestChangePasswordWrongOld(t *testing.T) {
	store := &fakeUserStore{users: map[string]*models.User{
		"admin": seedUser(t, 1, "admin", "123", models.RoleAdmin),
	}}
	a := NewAuthenticator(store)

	err := a.ChangePassword(context.Background(), 1, "wrong", "stronger")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePasswordEmptyNew(t *testing.T) {
	a := NewAuthenticator(&fakeUserStore{})
	err := a.ChangePassword(context.Background(), 1, "123", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestChangePasswordUnknownUser(t *testing.T) {
	a := NewAuthenticator(&fakeUserStore{users: map[string]*models.User{}})
	err := a.ChangePassword(context.Background(), 42, "123", "stronger")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
