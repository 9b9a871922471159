package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/go-ddd-blog/internal/interface/http"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
)

// ArticleModule serves /articles. Reads are public and filtered by the
// caller's role; updates and deletes need an admin or author session.
type ArticleModule struct {
	Handler       *handlers.ArticleHandler
	DB            middleware.Pinger
	Logger        *logrus.Logger
	ProtectWrites bool
}

func NewArticleModule(h *handlers.ArticleHandler, db middleware.Pinger, logger *logrus.Logger, protectWrites bool) *ArticleModule {
	return &ArticleModule{Handler: h, DB: db, Logger: logger, ProtectWrites: protectWrites}
}

func (m *ArticleModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/articles", middleware.RequireDB(m.DB, m.Logger))

	g.GET("", m.Handler.List)
	g.GET("/search", m.Handler.Search)
	g.GET("/:id", m.Handler.Get)

	if m.ProtectWrites {
		g.POST("", middleware.RequirePrivileged(), m.Handler.Create)
	} else {
		g.POST("", m.Handler.Create)
	}

	priv := g.Group("", middleware.RequirePrivileged())
	{
		priv.PUT("/:id", m.Handler.Update)
		priv.DELETE("/:id", m.Handler.Delete)
	}
}
