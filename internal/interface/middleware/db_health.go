package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/pkg/response"
)

const dbPingTimeout = 2 * time.Second

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RequireDB pings the database before database-backed handlers run and
// answers 500 when it is unreachable.
func RequireDB(db Pinger, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), dbPingTimeout)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			logger.WithError(err).WithField("path", c.Request.URL.Path).Error("database ping failed")
			response.Error[any](c, http.StatusInternalServerError, "database unavailable", nil)
			return
		}
		c.Next()
	}
}
