package container

import (
	"context"
	"fmt"

	gcstorage "cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/config"
	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/internal/infrastructure/notify"
	pginfra "github.com/oksasatya/go-ddd-blog/internal/infrastructure/postgres"
	redisinfra "github.com/oksasatya/go-ddd-blog/internal/infrastructure/redis"
	"github.com/oksasatya/go-ddd-blog/internal/infrastructure/search"
	"github.com/oksasatya/go-ddd-blog/internal/infrastructure/storage"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

// Container owns every long-lived client of the API process. It is built
// once in main, handed to the router and closed on shutdown.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	DB     *pgxpool.Pool
	Redis  *redis.Client
	GCS    *gcstorage.Client        // nil unless UPLOAD_BACKEND=gcs
	ES     *elasticsearch.Client    // nil when ELASTICSEARCH_ADDRS is empty
	Rabbit *helpers.RabbitPublisher // nil when RABBITMQ_URL is empty

	JWT     *helpers.JWTManager
	Cookies *helpers.CookieManager
	Uploads storage.Backend

	Articles *application.ArticleService
	Auth     *application.AuthService
	Uploader *application.UploadService
	Seeder   *application.SeedService
}

// New connects to Postgres and Redis, opens the optional clients and wires
// the services. Optional clients that fail to connect are logged and left nil.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{
		Config:  cfg,
		Logger:  logger,
		JWT:     helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL),
		Cookies: helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
	}

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	c.DB = pool

	c.Redis = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := helpers.PingRedis(ctx, c.Redis); err != nil {
		// sessions and rate limits degrade; the public read API keeps working
		logger.WithError(err).Warn("redis unreachable at startup")
	}

	if cfg.UploadBackend == storage.BackendGCS {
		gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("init gcs client: %w", err)
		}
		c.GCS = gcs
	}

	if es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass); err != nil {
		logger.WithError(err).Warn("elasticsearch disabled")
	} else {
		c.ES = es
	}

	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq disabled, publish notifications will not be sent")
		} else {
			c.Rabbit = pub
		}
	}

	if err := c.wire(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) wire() error {
	cfg := c.Config

	uploads, err := storage.New(storage.Config{
		Backend:       cfg.UploadBackend,
		Dir:           cfg.UploadDir,
		PublicPath:    cfg.UploadPublicPath,
		GCSBucket:     cfg.GCSBucket,
		GCSPrefix:     cfg.UploadGCSPrefix,
		FallbackLocal: cfg.UploadFallbackLocal,
		Timeout:       cfg.UploadTimeout,
	}, c.GCS, c.Logger)
	if err != nil {
		return fmt.Errorf("upload backend: %w", err)
	}
	c.Uploads = uploads

	articles := pginfra.NewArticleRepository(c.DB)
	users := pginfra.NewUserRepository(c.DB)
	sessions := redisinfra.NewSessionRepository(c.Redis)

	// typed nils must not reach the interfaces
	var indexer application.ArticleIndexer
	if c.ES != nil {
		indexer = search.NewArticleIndex(c.ES, cfg.ESArticlesIndex)
	}
	var notifier application.ArticleNotifier
	if c.Rabbit != nil && len(cfg.NotifyRecipients()) > 0 {
		notifier = notify.NewEmailNotifier(c.Rabbit, cfg.NotifyRecipients(), cfg.AppName, cfg.SiteURL)
	}

	c.Articles = application.NewArticleService(articles, indexer, notifier, c.Logger)
	c.Auth = application.NewAuthService(users, sessions, c.JWT, c.Logger)
	c.Uploader = application.NewUploadService(c.Uploads, cfg.UploadMaxBytes, cfg.UploadTypes(), c.Logger)
	c.Seeder = application.NewSeedService(users, articles, indexer, application.SeedAdmin{
		Email:    cfg.SeedAdminEmail,
		Password: cfg.SeedAdminPassword,
		Name:     cfg.SeedAdminName,
	}, c.Logger)
	return nil
}

// Close releases every client that was opened. It is safe on a partially built container.
func (c *Container) Close() {
	if c.Rabbit != nil {
		c.Rabbit.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
