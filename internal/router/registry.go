package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-blog/pkg/response"
)

const apiPrefix = "/api"

// Registry collects feature modules and mounts them under /api.
type Registry struct {
	Engine *gin.Engine
	API    *gin.RouterGroup

	shared  []gin.HandlerFunc
	modules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group(apiPrefix)}
}

// Use adds middlewares that run ahead of every module's own chain.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.shared = append(r.shared, mw...)
}

func (r *Registry) Add(mods ...Module) {
	for _, m := range mods {
		if m != nil {
			r.modules = append(r.modules, m)
		}
	}
}

// RegisterAll mounts the modules in the order they were added. Unknown /api
// paths answer with the JSON envelope; anything else keeps gin's plain 404.
func (r *Registry) RegisterAll() {
	r.API.Use(r.shared...)
	for _, m := range r.modules {
		m.Register(r.API)
	}
	r.Engine.NoRoute(func(c *gin.Context) {
		if c.Request.URL.Path == apiPrefix || strings.HasPrefix(c.Request.URL.Path, apiPrefix+"/") {
			response.Error[any](c, http.StatusNotFound, "route not found", nil)
			return
		}
		c.AbortWithStatus(http.StatusNotFound)
	})
}
