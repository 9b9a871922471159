package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-blog/config"
	"github.com/oksasatya/go-ddd-blog/internal/application"
	pginfra "github.com/oksasatya/go-ddd-blog/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-blog/internal/infrastructure/search"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

// seed applies migrations, then creates the admin user and fixture articles
// exactly like GET /api/seed.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), logger); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	var indexer application.ArticleIndexer
	if es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass); err != nil {
		logger.WithError(err).Warn("elasticsearch disabled")
	} else if es != nil {
		indexer = search.NewArticleIndex(es, cfg.ESArticlesIndex)
	}

	svc := application.NewSeedService(
		pginfra.NewUserRepository(pool),
		pginfra.NewArticleRepository(pool),
		indexer,
		application.SeedAdmin{Email: cfg.SeedAdminEmail, Password: cfg.SeedAdminPassword, Name: cfg.SeedAdminName},
		logger,
	)
	res, err := svc.Seed(ctx)
	if err != nil {
		logger.WithError(err).Error("seed failed")
		pool.Close()
		os.Exit(1)
	}
	logger.WithField("admin_email", res.AdminEmail).Info(res.Message)
}
