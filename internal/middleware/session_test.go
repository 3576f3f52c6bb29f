package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runSession runs the Session middleware, then fn inside the handler
func runSession(t *testing.T, opts SessionOptions, cookie *http.Cookie, fn func(c echo.Context) string) (string, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	handler := Session(opts)(func(c echo.Context) error {
		seen = fn(c)
		return nil
	})
	require.NoError(t, handler(c))
	return seen, rec
}

func TestSessionDoesNotIssueCookieByItself(t *testing.T) {
	id, rec := runSession(t, SessionOptions{}, nil, SessionID)

	assert.Equal(t, "", id)
	assert.Empty(t, rec.Result().Cookies())
}

func TestEnsureSessionIDIssuesCookie(t *testing.T) {
	id, rec := runSession(t, SessionOptions{Secure: true, MaxAge: 60}, nil, EnsureSessionID)

	_, err := uuid.Parse(id)
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Equal(t, id, cookies[0].Value)
	assert.Equal(t, 60, cookies[0].MaxAge)
	assert.True(t, cookies[0].Secure)
	assert.True(t, cookies[0].HttpOnly)
}

func TestEnsureSessionIDIsIdempotent(t *testing.T) {
	_, rec := runSession(t, SessionOptions{}, nil, func(c echo.Context) string {
		first := EnsureSessionID(c)
		assert.Equal(t, first, EnsureSessionID(c))
		return first
	})
	assert.Len(t, rec.Result().Cookies(), 1)
}

func TestSessionKeepsValidCookie(t *testing.T) {
	existing := uuid.NewString()
	id, rec := runSession(t, SessionOptions{}, &http.Cookie{Name: SessionCookieName, Value: existing}, EnsureSessionID)

	assert.Equal(t, existing, id)
	assert.Empty(t, rec.Result().Cookies())
}

func TestSessionReplacesInvalidCookie(t *testing.T) {
	cookie := &http.Cookie{Name: SessionCookieName, Value: "bogus"}

	id, _ := runSession(t, SessionOptions{}, cookie, SessionID)
	assert.Equal(t, "", id)

	id, rec := runSession(t, SessionOptions{}, cookie, EnsureSessionID)
	assert.NotEqual(t, "bogus", id)
	require.Len(t, rec.Result().Cookies(), 1)
}

func TestSessionIDWithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, "", SessionID(c))
	assert.Equal(t, "", EnsureSessionID(c))

	c.Set(sessionIDKey, 42)
	assert.Equal(t, "", SessionID(c))
}
