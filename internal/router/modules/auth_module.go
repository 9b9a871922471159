package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-blog/internal/interface/http"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Limits  Limits
}

func NewAuthModule(h *handlers.AuthHandler, limits Limits) *AuthModule {
	return &AuthModule{Handler: h, Limits: limits}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	l := m.Limits
	loginLimiter := middleware.RateLimit(l.Redis, l.Login, l.Window, middleware.KeyByIPAndPath(), l.Allow, l.Logger)
	refreshLimiter := middleware.RateLimit(l.Redis, l.Login*6, l.Window, middleware.KeyByIPAndPath(), l.Allow, l.Logger)

	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.Refresh)
	rg.POST("/auth/logout", m.Handler.Logout)
	rg.GET("/auth/session", m.Handler.Session)
}
