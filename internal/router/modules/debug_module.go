package modules

import (
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sda-collective/member-directory/internal/container"
	"github.com/sda-collective/member-directory/internal/interface/middleware"
)

// DebugModule exposes expvar counters and a liveness probe.
type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
	rg.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
}
