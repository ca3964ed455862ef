package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sda-collective/member-directory/internal/container"
	handlers "github.com/sda-collective/member-directory/internal/interface/http"
	"github.com/sda-collective/member-directory/internal/interface/middleware"
)

// AuthModule wires the login surface.
// Public: POST /api/login, POST /api/logout, GET /api/session
// Guarded: POST /api/members/:handle/reset-password (own profile only)
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Tight per-IP budget on login: credential guessing burns out fast,
	// legitimate members never notice.
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/logout", m.Handler.Logout)
	rg.GET("/session", m.Handler.Session)

	own := rg.Group("/members/:handle")
	own.Use(middleware.RequireOwnProfile(container.GetSessions()))
	own.POST("/reset-password", loginLimiter, m.Handler.ResetPassword)
}
