package middlewares

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the one cookie this server reads. All cookie access
// lives in this package; handlers never parse Cookie headers themselves.
const SessionCookieName = "sessionToken"

// ReadSessionToken extracts the session token from the request, or "" when
// the cookie is missing or blank.
func ReadSessionToken(c echo.Context) string {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

// NewSessionCookie builds the Set-Cookie for a freshly issued token.
// HttpOnly and SameSite=Strict always; Secure only over TLS.
func NewSessionCookie(token string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearSessionCookie builds the Set-Cookie that removes the session cookie
// client-side (serialized with Max-Age=0).
func ClearSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}
