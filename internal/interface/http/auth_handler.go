package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sda-collective/member-directory/internal/application"
	"github.com/sda-collective/member-directory/internal/interface/middleware"
	"github.com/sda-collective/member-directory/pkg/helpers"
	"github.com/sda-collective/member-directory/pkg/response"
	"github.com/sda-collective/member-directory/pkg/validation"
)

type AuthHandler struct {
	Auth     *application.AuthService
	Sessions *helpers.SessionManager
	Logger   *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, sessions *helpers.SessionManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Sessions: sessions, Logger: logger}
}

// loginRequest carries a "website" honeypot field. Real users never see it;
// a filled value means a bot, which gets the same generic rejection as a
// wrong password.
type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Website  string `json:"website"`
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if req.Website != "" {
		response.Fail(c, http.StatusUnauthorized, "invalid username or password", nil)
		return
	}

	res, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.Sessions.Set(c, res.Handle); err != nil {
		h.Logger.WithError(err).Error("session issue failed")
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.OK(c, http.StatusOK, gin.H{
		"handle":    res.Handle,
		"needReset": res.NeedReset,
	}, "login successful")
}

// Logout POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Sessions.Clear(c)
	response.OK[any](c, http.StatusOK, nil, "logged out")
}

// Session GET /api/session
func (h *AuthHandler) Session(c *gin.Context) {
	handle, ok := h.Sessions.Handle(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "not logged in", nil)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"handle": handle}, "session active")
}

// ResetPassword POST /api/members/:handle/reset-password
// Session-guarded: the route handle must match the session.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req application.ResetPasswordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	handle := middleware.SessionHandle(c)
	if err := h.Auth.ResetPassword(c.Request.Context(), handle, req); err != nil {
		writeError(c, err)
		return
	}
	response.OK[any](c, http.StatusOK, nil, "password updated")
}
