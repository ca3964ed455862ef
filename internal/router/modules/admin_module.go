package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sda-collective/member-directory/internal/container"
	handlers "github.com/sda-collective/member-directory/internal/interface/http"
	"github.com/sda-collective/member-directory/internal/interface/middleware"
)

// AdminModule wires the key-protected admin surface under /api/admin.
type AdminModule struct {
	Handler *handlers.AdminHandler
}

func NewAdminModule(h *handlers.AdminHandler) *AdminModule {
	return &AdminModule{Handler: h}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(
		middleware.RequireAdminKey(container.GetConfig().AdminAPIKey),
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()),
	)
	{
		admin.GET("/members", m.Handler.List)
		admin.POST("/members", m.Handler.Create)
		admin.GET("/members/:handle", m.Handler.Get)
		admin.PUT("/members/:handle", m.Handler.Update)
	}
}
