package modules

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
)

// Limits carries the per-IP request budgets of the rate-limited routes.
// A nil Redis disables limiting.
type Limits struct {
	Redis  *redis.Client
	Login  int
	Upload int
	Window time.Duration
	Allow  middleware.AllowFunc
	Logger *logrus.Logger
}
