package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/go-ddd-blog/internal/interface/http"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
)

type SeedModule struct {
	Handler *handlers.SeedHandler
	DB      middleware.Pinger
	Logger  *logrus.Logger
}

func NewSeedModule(h *handlers.SeedHandler, db middleware.Pinger, logger *logrus.Logger) *SeedModule {
	return &SeedModule{Handler: h, DB: db, Logger: logger}
}

func (m *SeedModule) Register(rg *gin.RouterGroup) {
	rg.GET("/seed", middleware.RequireDB(m.DB, m.Logger), m.Handler.Seed)
}
