package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PasinduAnjana/Studentscope-sub000/auth"
	"github.com/PasinduAnjana/Studentscope-sub000/middlewares"
	"github.com/PasinduAnjana/Studentscope-sub000/models"
)

// In-memory stores backing a full login round trip without a database.

type memUserStore struct {
	byName map[string]*models.User
}

func (m *memUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := m.byName[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUserStore) FindByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range m.byName {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserStore) UpdateCredentials(_ context.Context, id uint, passwordHash, salt string) error {
	for _, u := range m.byName {
		if u.ID == id {
			u.PasswordHash = passwordHash
			u.Salt = salt
			return nil
		}
	}
	return nil
}

type memSessionRepo struct {
	users map[uint]models.User
	rows  map[string]models.Session
}

func (m *memSessionRepo) Insert(_ context.Context, s *models.Session) error {
	m.rows[s.Token] = *s
	return nil
}

func (m *memSessionRepo) FindByToken(_ context.Context, token string) (*models.Session, error) {
	row, ok := m.rows[token]
	if !ok {
		return nil, nil
	}
	row.User = m.users[row.UserID]
	return &row, nil
}

func (m *memSessionRepo) DeleteByToken(_ context.Context, token string) error {
	delete(m.rows, token)
	return nil
}

func (m *memSessionRepo) DeleteExpired(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for token, row := range m.rows {
		if !row.ExpiresAt.After(cutoff) {
			delete(m.rows, token)
			n++
		}
	}
	return n, nil
}

// newAuthApp builds an echo app with the auth routes and one seeded admin.
func newAuthApp(t *testing.T) *echo.Echo {
	t.Helper()

	salt, err := auth.GenerateSalt()
	require.NoError(t, err)
	hash, err := auth.HashPassword("123", salt)
	require.NoError(t, err)
	admin := &models.User{ID: 1, Username: "admin", PasswordHash: hash, Salt: salt, Role: models.RoleAdmin, Name: "Administrator"}

	users := &memUserStore{byName: map[string]*models.User{"admin": admin}}
	repo := &memSessionRepo{
		users: map[uint]models.User{1: *admin},
		rows:  map[string]models.Session{},
	}

	authn := auth.NewAuthenticator(users)
	sessions := auth.NewSessions(repo, time.Hour)
	h := NewAuthHandler(authn, sessions, nil)
	authed := middlewares.RequireSession(sessions)

	e := echo.New()
	e.POST("/login", h.Login)
	e.POST("/logout", h.Logout)
	e.GET("/me", h.Me, authed)
	e.PUT("/profile/password", h.ChangePassword, authed)
	return e
}

func doJSON(e *echo.Echo, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == middlewares.SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestLoginSuccess(t *testing.T) {
	e := newAuthApp(t)

	rec := doJSON(e, http.MethodPost, "/login", `{"username":"admin","password":"123"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Login successful", body["message"])
	assert.Equal(t, models.RoleAdmin, body["role"])
	assert.Equal(t, "admin", body["username"])

	cookie := sessionCookie(t, rec)
	assert.Len(t, cookie.Value, 64)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, 3600, cookie.MaxAge)
}

func TestLoginWrongPassword(t *testing.T) {
	e := newAuthApp(t)

	rec := doJSON(e, http.MethodPost, "/login", `{"username":"admin","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies(), "failed login must not issue a session")
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestLoginUnknownUser(t *testing.T) {
	e := newAuthApp(t)

	rec := doJSON(e, http.MethodPost, "/login", `{"username":"nobody","password":"123"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestLoginMissingFields(t *testing.T) {
	e := newAuthApp(t)

	rec := doJSON(e, http.MethodPost, "/login", `{"username":"admin"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodPost, "/login", `{"password":"123"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMeWithValidSession(t *testing.T) {
	e := newAuthApp(t)

	login := doJSON(e, http.MethodPost, "/login", `{"username":"admin","password":"123"}`, nil)
	require.Equal(t, http.StatusOK, login.Code)
	cookie := sessionCookie(t, login)

	rec := doJSON(e, http.MethodGet, "/me", "", &http.Cookie{Name: cookie.Name, Value: cookie.Value})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "admin", body["username"])
	assert.Equal(t, models.RoleAdmin, body["role"])
	assert.Equal(t, float64(1), body["userId"])
}

func TestMeWithoutSession(t *testing.T) {
	e := newAuthApp(t)

	rec := doJSON(e, http.MethodGet, "/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodGet, "/me", "", &http.Cookie{Name: middlewares.SessionCookieName, Value: "forged"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	e := newAuthApp(t)

	login := doJSON(e, http.MethodPost, "/login", `{"username":"admin","password":"123"}`, nil)
	require.Equal(t, http.StatusOK, login.Code)
	cookie := sessionCookie(t, login)
	reuse := &http.Cookie{Name: cookie.Name, Value: cookie.Value}

	out := doJSON(e, http.MethodPost, "/logout", "", reuse)
	require.Equal(t, http.StatusOK, out.Code)
	cleared := sessionCookie(t, out)
	assert.Empty(t, cleared.Value)
	assert.Equal(t, 0, cleared.MaxAge, "clear cookie serializes with Max-Age=0")

	// The token is gone server-side, not just in the browser.
	rec := doJSON(e, http.MethodGet, "/me", "", reuse)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutWithoutSession(t *testing.T) {
	e := newAuthApp(t)

	rec := doJSON(e, http.MethodPost, "/logout", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Logout successful")
}

func TestChangePasswordFlow(t *testing.T) {
	e := newAuthApp(t)

	login := doJSON(e, http.MethodPost, "/login", `{"username":"admin","password":"123"}`, nil)
	require.Equal(t, http.StatusOK, login.Code)
	cookie := sessionCookie(t, login)
	reuse := &http.Cookie{Name: cookie.Name, Value: cookie.Value}

	rec := doJSON(e, http.MethodPut, "/profile/password", `{"old_password":"wrong","new_password":"stronger"}`, reuse)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodPut, "/profile/password", `{"old_password":"123","new_password":"stronger"}`, reuse)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/login", `{"username":"admin","password":"123"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "old password must stop working")

	rec = doJSON(e, http.MethodPost, "/login", `{"username":"admin","password":"stronger"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
