package middlewares

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/PasinduAnjana/Studentscope-sub000/auth"
)

// Context keys set by RequireSession.
const (
	CtxUserID    = "user_id"
	CtxUsername  = "username"
	CtxRole      = "role"
	CtxStudentID = "student_id"
)

// SessionResolver is the slice of the session store the guard needs.
type SessionResolver interface {
	Get(ctx context.Context, token string) (*auth.SessionInfo, error)
}

// RequireSession resolves the session cookie against the session store and
// attaches the identity to the request context. Every protected route goes
// through here; a role is never trusted unless it came out of the store.
func RequireSession(sessions SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ReadSessionToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "Authentication required"})
			}
			info, err := sessions.Get(c.Request().Context(), token)
			if err != nil {
				slog.Error("session lookup failed", "error", err)
				return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "Internal server error"})
			}
			if info == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "Invalid or expired session"})
			}
			c.Set(CtxUserID, info.UserID)
			c.Set(CtxUsername, info.Username)
			c.Set(CtxRole, info.Role)
			if info.StudentID != nil {
				c.Set(CtxStudentID, *info.StudentID)
			}
			return next(c)
		}
	}
}

// RequireRole limits a route to the given roles, e.g. RequireRole("admin")
// or RequireRole("teacher", "admin"). Must run after RequireSession.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[strings.ToLower(role)]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "Forbidden"})
			}
			return next(c)
		}
	}
}
