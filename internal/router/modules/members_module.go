package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sda-collective/member-directory/internal/container"
	handlers "github.com/sda-collective/member-directory/internal/interface/http"
	"github.com/sda-collective/member-directory/internal/interface/middleware"
)

// MembersModule wires the member-facing profile routes. Reads need any
// valid session; writes are restricted to the profile owner.
type MembersModule struct {
	Handler *handlers.MemberHandler
}

func NewMembersModule(h *handlers.MemberHandler) *MembersModule {
	return &MembersModule{Handler: h}
}

func (m *MembersModule) Register(rg *gin.RouterGroup) {
	sessions := container.GetSessions()
	limiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyBySession(), middleware.AllowPrivateIP())

	read := rg.Group("/members")
	read.Use(middleware.RequireSession(sessions), limiter)
	read.GET("/:handle", m.Handler.Get)

	own := rg.Group("/members/:handle")
	own.Use(middleware.RequireOwnProfile(sessions), limiter)
	own.PUT("", m.Handler.Update)
	own.PUT("/reviews/:reviewID", m.Handler.UpdateReview)
	own.POST("/photo", m.Handler.UploadPhoto)
}
