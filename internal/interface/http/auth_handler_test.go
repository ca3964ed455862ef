package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sda-collective/member-directory/internal/application"
	"github.com/sda-collective/member-directory/internal/domain/entity"
	"github.com/sda-collective/member-directory/internal/infrastructure/memory"
	"github.com/sda-collective/member-directory/pkg/helpers"
)

type authFixture struct {
	router   *gin.Engine
	sessions *helpers.SessionManager
	creds    *memory.CredentialStore
}

func newAuthTestRouter(t *testing.T) *authFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	members := memory.NewMemberRepo()
	creds := memory.NewCredentialStore()
	auth := application.NewAuthService(members, creds, nil, nil, false)
	sessions := helpers.NewSessionManager([]string{"test-secret"}, "member_session", "localhost", false, time.Hour)
	h := NewAuthHandler(auth, sessions, nil)

	hash, err := helpers.HashPassword("hunter22")
	require.NoError(t, err)
	require.NoError(t, creds.Store(context.Background(), "jane@example.com", entity.CredentialRecord{
		Handle:         "jane-doe",
		HashedPassword: hash,
	}))

	r := gin.New()
	r.POST("/api/login", h.Login)
	r.POST("/api/logout", h.Logout)
	r.GET("/api/session", h.Session)
	return &authFixture{router: r, sessions: sessions, creds: creds}
}

func postJSON(t *testing.T, r *gin.Engine, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginSetsSessionCookie(t *testing.T) {
	f := newAuthTestRouter(t)

	w := postJSON(t, f.router, "/api/login", `{"username":"jane@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var found *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == f.sessions.CookieName {
			found = c
		}
	}
	require.NotNil(t, found, "expected a session cookie")
	assert.True(t, found.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, found.SameSite)

	handle, err := f.sessions.Verify(found.Value)
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", handle)

	var body struct {
		Data struct {
			Handle    string `json:"handle"`
			NeedReset bool   `json:"needReset"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "jane-doe", body.Data.Handle)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthTestRouter(t)

	w := postJSON(t, f.router, "/api/login", `{"username":"jane@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	for _, c := range w.Result().Cookies() {
		assert.NotEqual(t, f.sessions.CookieName, c.Name)
	}
}

func TestLoginHoneypotTrapsBots(t *testing.T) {
	f := newAuthTestRouter(t)

	// Correct credentials with the hidden field filled: same rejection as a
	// wrong password, and no credential lookup leaks through timing on the
	// store.
	w := postJSON(t, f.router, "/api/login", `{"username":"jane@example.com","password":"hunter22","website":"https://spam.example.com"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	f := newAuthTestRouter(t)

	token, err := f.sessions.Issue("jane-doe")
	require.NoError(t, err)
	w := postJSON(t, f.router, "/api/logout", `{}`, &http.Cookie{Name: f.sessions.CookieName, Value: token})
	require.Equal(t, http.StatusOK, w.Code)

	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == f.sessions.CookieName && c.Value == "" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestSessionEndpoint(t *testing.T) {
	f := newAuthTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := f.sessions.Issue("jane-doe")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.AddCookie(&http.Cookie{Name: f.sessions.CookieName, Value: token})
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jane-doe")
}
