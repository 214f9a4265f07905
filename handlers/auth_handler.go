package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/PasinduAnjana/Studentscope-sub000/auth"
	"github.com/PasinduAnjana/Studentscope-sub000/middlewares"
	"github.com/PasinduAnjana/Studentscope-sub000/models"
)

// Authenticator is the credential-verification surface the handler uses.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error
}

// SessionManager is the session-lifecycle surface the handler uses.
type SessionManager interface {
	Create(ctx context.Context, user *models.User) (string, error)
	Destroy(ctx context.Context, token string) error
	TTL() time.Duration
}

// LoginRecorder receives login outcomes for metrics. Nil disables recording.
type LoginRecorder interface {
	RecordLogin(outcome string)
}

type AuthHandler struct {
	auth     Authenticator
	sessions SessionManager
	metrics  LoginRecorder
}

func NewAuthHandler(a Authenticator, s SessionManager, m LoginRecorder) *AuthHandler {
	return &AuthHandler{auth: a, sessions: s, metrics: m}
}

func (h *AuthHandler) record(outcome string) {
	if h.metrics != nil {
		h.metrics.RecordLogin(outcome)
	}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Username and password are required"})
	}

	user, err := h.auth.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		slog.Error("authenticate failed", "error", err)
		h.record("error")
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "Internal server error"})
	}
	if user == nil {
		// Expected control flow, not a server fault.
		slog.Debug("login rejected", "username", req.Username)
		h.record("failure")
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "Invalid credentials"})
	}

	token, err := h.sessions.Create(c.Request().Context(), user)
	if err != nil {
		slog.Error("session create failed", "error", err, "user_id", user.ID)
		h.record("error")
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "Internal server error"})
	}

	c.SetCookie(middlewares.NewSessionCookie(token, h.sessions.TTL(), c.IsTLS()))
	h.record("success")
	return c.JSON(http.StatusOK, map[string]any{
		"message":  "Login successful",
		"role":     user.Role,
		"username": user.Username,
	})
}

// Logout handles POST /logout. Succeeds whether or not a session existed.
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := middlewares.ReadSessionToken(c); token != "" {
		if err := h.sessions.Destroy(c.Request().Context(), token); err != nil {
			slog.Error("session destroy failed", "error", err)
		}
	}
	c.SetCookie(middlewares.ClearSessionCookie(c.IsTLS()))
	return c.JSON(http.StatusOK, map[string]any{"message": "Logout successful"})
}

// Me handles GET /me. Runs behind RequireSession.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"username": c.Get(middlewares.CtxUsername),
		"role":     c.Get(middlewares.CtxRole),
		"userId":   c.Get(middlewares.CtxUserID),
	})
}

type changePasswordReq struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword handles PUT /profile/password. Runs behind RequireSession.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Old and new passwords are required"})
	}

	userID, _ := c.Get(middlewares.CtxUserID).(uint)
	err := h.auth.ChangePassword(c.Request().Context(), userID, req.OldPassword, req.NewPassword)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "Invalid credentials"})
	case errors.Is(err, auth.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "Invalid password"})
	case err != nil:
		slog.Error("change password failed", "error", err, "user_id", userID)
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Password updated"})
}
