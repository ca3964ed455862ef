package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sda-collective/member-directory/pkg/helpers"
	"github.com/sda-collective/member-directory/pkg/response"
)

const ctxKeySessionHandle = "session_handle"

// RequireSession rejects requests without a valid session cookie. The bound
// handle lands in the context under "session_handle".
func RequireSession(sessions *helpers.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		handle, ok := sessions.Handle(c)
		if !ok {
			sessions.Clear(c)
			response.Fail(c, http.StatusUnauthorized, "not logged in", nil)
			c.Abort()
			return
		}
		c.Set(ctxKeySessionHandle, handle)
		c.Next()
	}
}

// RequireOwnProfile additionally checks that the :handle route parameter
// matches the session's handle. A mismatch destroys the session: a cookie
// presented against the wrong profile is not trusted for anything.
func RequireOwnProfile(sessions *helpers.SessionManager) gin.HandlerFunc {
	guard := RequireSession(sessions)
	return func(c *gin.Context) {
		guard(c)
		if c.IsAborted() {
			return
		}
		if c.Param("handle") != c.GetString(ctxKeySessionHandle) {
			sessions.Clear(c)
			response.Fail(c, http.StatusUnauthorized, "not logged in", nil)
			c.Abort()
		}
	}
}

// SessionHandle returns the handle stored by RequireSession.
func SessionHandle(c *gin.Context) string {
	return c.GetString(ctxKeySessionHandle)
}
