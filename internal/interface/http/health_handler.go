package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/pkg/response"
)

const healthTimeout = 2 * time.Second

// HealthCheck is one dependency check, e.g. a database or Redis ping.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthHandler struct {
	Checks []HealthCheck
	Logger *logrus.Logger
}

func NewHealthHandler(logger *logrus.Logger, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{Checks: checks, Logger: logger}
}

// Health answers 200 when every check passes and 503 otherwise.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status := make(map[string]string, len(h.Checks))
	healthy := true
	for _, hc := range h.Checks {
		if err := hc.Check(ctx); err != nil {
			h.Logger.WithError(err).WithField("check", hc.Name).Warn("health check failed")
			status[hc.Name] = "down"
			healthy = false
			continue
		}
		status[hc.Name] = "ok"
	}
	if !healthy {
		response.Error[any](c, http.StatusServiceUnavailable, "unhealthy", status)
		return
	}
	response.Success(c, http.StatusOK, status, "ok", nil)
}
