package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName is the cookie carrying the session ID
	SessionCookieName = "navshell_session"

	sessionIDKey      = "sessionID"
	sessionOptionsKey = "sessionOptions"
)

// SessionOptions configures the session cookie
type SessionOptions struct {
	Secure bool
	MaxAge int
}

// Session returns a middleware that picks up the session ID from a valid
// session cookie. It never issues a cookie itself: handlers that need a
// session call EnsureSessionID, so requests that never navigate do not
// create sessions.
func Session(opts SessionOptions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(sessionOptionsKey, opts)
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				if id, err := uuid.Parse(cookie.Value); err == nil {
					c.Set(sessionIDKey, id.String())
				}
			}
			return next(c)
		}
	}
}

// SessionID returns the session ID of the request, or "" when the request
// carries no valid session cookie
func SessionID(c echo.Context) string {
	val := c.Get(sessionIDKey)
	if val == nil {
		return ""
	}
	id, ok := val.(string)
	if !ok {
		return ""
	}
	return id
}

// EnsureSessionID returns the request's session ID, issuing a new session
// cookie when the request has none. It returns "" when the Session
// middleware did not run.
func EnsureSessionID(c echo.Context) string {
	if id := SessionID(c); id != "" {
		return id
	}
	opts, ok := c.Get(sessionOptionsKey).(SessionOptions)
	if !ok {
		return ""
	}

	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   opts.MaxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(sessionIDKey, id)
	return id
}
