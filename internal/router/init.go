package router

import (
	"context"

	"github.com/oksasatya/go-ddd-blog/internal/container"
	"github.com/oksasatya/go-ddd-blog/internal/infrastructure/storage"
	handlers "github.com/oksasatya/go-ddd-blog/internal/interface/http"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-blog/internal/router/modules"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

// InitModules builds the handlers from the container and registers every
// feature module. Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config
	logger := c.Logger

	limits := modules.Limits{
		Redis:  c.Redis,
		Login:  cfg.RateLimitLogin,
		Upload: cfg.RateLimitUpload,
		Window: cfg.RateLimitWindow,
		Logger: logger,
	}
	if cfg.RateLimitBypassPrivate {
		limits.Allow = middleware.AllowPrivateIP()
	}

	r.Use(middleware.Authenticate(c.Auth))

	r.Add(modules.NewArticleModule(handlers.NewArticleHandler(c.Articles, logger), c.DB, logger, cfg.ProtectArticleWrites))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(c.Auth, c.Cookies, logger), limits))
	r.Add(modules.NewUploadModule(handlers.NewUploadHandler(c.Uploader, logger), limits, cfg.ProtectArticleWrites))
	if cfg.SeedEndpointEnabled {
		r.Add(modules.NewSeedModule(handlers.NewSeedHandler(c.Seeder, logger), c.DB, logger))
	}
	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(logger,
		handlers.HealthCheck{Name: "database", Check: c.DB.Ping},
		handlers.HealthCheck{Name: "redis", Check: func(ctx context.Context) error { return helpers.PingRedis(ctx, c.Redis) }},
	)))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis, logger))
	}

	// files written by the local backend are served from the same process
	if cfg.UploadBackend == "" || cfg.UploadBackend == storage.BackendLocal || cfg.UploadFallbackLocal {
		r.Engine.Group(cfg.UploadPublicPath, middleware.UploadHeaders()).Static("/", cfg.UploadDir)
	}
}
