package router

import "github.com/gin-gonic/gin"

// Module is a feature (articles, auth, upload, ...) that adds its routes to the /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
