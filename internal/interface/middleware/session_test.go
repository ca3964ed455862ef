package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sda-collective/member-directory/pkg/helpers"
)

func sessionRouter(t *testing.T) (*gin.Engine, *helpers.SessionManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sessions := helpers.NewSessionManager([]string{"test-secret"}, "member_session", "localhost", false, time.Hour)

	r := gin.New()
	r.GET("/members/:handle", RequireOwnProfile(sessions), func(c *gin.Context) {
		c.String(http.StatusOK, SessionHandle(c))
	})
	return r, sessions
}

func sessionCookie(t *testing.T, sessions *helpers.SessionManager, handle string) *http.Cookie {
	t.Helper()
	token, err := sessions.Issue(handle)
	require.NoError(t, err)
	return &http.Cookie{Name: sessions.CookieName, Value: token}
}

func TestOwnProfilePasses(t *testing.T) {
	r, sessions := sessionRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/members/jane-doe", nil)
	req.AddCookie(sessionCookie(t, sessions, "jane-doe"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jane-doe", w.Body.String())
}

func TestMissingSessionRejected(t *testing.T) {
	r, _ := sessionRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/members/jane-doe", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestForeignHandleDestroysSession(t *testing.T) {
	r, sessions := sessionRouter(t)

	// Jane's cookie presented against Bob's profile: rejected, and the
	// cookie is cleared so the stale session cannot be replayed.
	req := httptest.NewRequest(http.MethodGet, "/members/bob", nil)
	req.AddCookie(sessionCookie(t, sessions, "jane-doe"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == sessions.CookieName && c.Value == "" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "expected the session cookie to be cleared")
}

func TestTamperedCookieRejected(t *testing.T) {
	r, sessions := sessionRouter(t)

	token, err := sessions.Issue("jane-doe")
	require.NoError(t, err)
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

	req := httptest.NewRequest(http.MethodGet, "/members/jane-doe", nil)
	req.AddCookie(&http.Cookie{Name: sessions.CookieName, Value: tampered})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
