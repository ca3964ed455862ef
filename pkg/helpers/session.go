package helpers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionManager issues and verifies the signed member-session cookie. The
// cookie carries only the member's handle. Secrets are ordered newest
// first: tokens are signed with the head and verified against the whole
// list, so rotation just prepends a secret.
type SessionManager struct {
	secrets    [][]byte
	CookieName string
	Domain     string
	Secure     bool
	TTL        time.Duration
}

var errNoSecrets = errors.New("session: no secrets configured")

func NewSessionManager(secrets []string, cookieName, domain string, secure bool, ttl time.Duration) *SessionManager {
	bs := make([][]byte, 0, len(secrets))
	for _, s := range secrets {
		bs = append(bs, []byte(s))
	}
	return &SessionManager{
		secrets:    bs,
		CookieName: cookieName,
		Domain:     domain,
		Secure:     secure,
		TTL:        ttl,
	}
}

type sessionClaims struct {
	Handle string `json:"hdl"`
	jwt.RegisteredClaims
}

// Issue signs a session token bound to handle.
func (m *SessionManager) Issue(handle string) (string, error) {
	if len(m.secrets) == 0 {
		return "", errNoSecrets
	}
	now := time.Now()
	claims := &sessionClaims{
		Handle: handle,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secrets[0])
}

// Verify returns the handle a token is bound to, trying every configured
// secret so sessions survive a rotation.
func (m *SessionManager) Verify(token string) (string, error) {
	var lastErr error = errNoSecrets
	for _, secret := range m.secrets {
		claims := &sessionClaims{}
		tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		})
		if err != nil {
			lastErr = err
			continue
		}
		if !tkn.Valid || claims.Handle == "" {
			lastErr = errors.New("invalid session token")
			continue
		}
		return claims.Handle, nil
	}
	return "", lastErr
}

// Set issues a session for handle and writes the cookie.
func (m *SessionManager) Set(c *gin.Context, handle string) error {
	token, err := m.Issue(handle)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.CookieName, token, int(m.TTL.Seconds()), "/", m.Domain, m.Secure, true)
	return nil
}

// Clear destroys the session cookie.
func (m *SessionManager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.CookieName, "", -1, "/", m.Domain, m.Secure, true)
}

// Handle returns the handle bound to the request's session cookie, or
// ("", false) when there is no usable session.
func (m *SessionManager) Handle(c *gin.Context) (string, bool) {
	token, err := c.Cookie(m.CookieName)
	if err != nil || token == "" {
		return "", false
	}
	handle, err := m.Verify(token)
	if err != nil {
		return "", false
	}
	return handle, true
}
