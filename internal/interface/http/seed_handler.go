package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/pkg/response"
)

type SeedHandler struct {
	Svc    *application.SeedService
	Logger *logrus.Logger
}

func NewSeedHandler(svc *application.SeedService, logger *logrus.Logger) *SeedHandler {
	return &SeedHandler{Svc: svc, Logger: logger}
}

func (h *SeedHandler) Seed(c *gin.Context) {
	res, err := h.Svc.Seed(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("seed failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to seed database", nil)
		return
	}
	response.Success(c, http.StatusOK, res, res.Message, nil)
}
