package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-blog/internal/interface/http"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
)

type UploadModule struct {
	Handler       *handlers.UploadHandler
	Limits        Limits
	ProtectWrites bool
}

func NewUploadModule(h *handlers.UploadHandler, limits Limits, protectWrites bool) *UploadModule {
	return &UploadModule{Handler: h, Limits: limits, ProtectWrites: protectWrites}
}

func (m *UploadModule) Register(rg *gin.RouterGroup) {
	l := m.Limits
	chain := []gin.HandlerFunc{}
	if m.ProtectWrites {
		chain = append(chain, middleware.RequirePrivileged())
	}
	chain = append(chain,
		middleware.RateLimit(l.Redis, l.Upload, l.Window, middleware.KeyByUserID(), middleware.AnyAllow(l.Allow, middleware.AllowPrivileged()), l.Logger),
		m.Handler.Upload,
	)
	rg.POST("/upload", chain...)
}
