package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/pkg/response"
)

// multipart headers and boundaries on top of the file itself
const multipartOverhead = 1 << 20

type UploadHandler struct {
	Svc    *application.UploadService
	Logger *logrus.Logger
}

func NewUploadHandler(svc *application.UploadService, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{Svc: svc, Logger: logger}
}

// Upload handles POST /upload with a multipart "file" field.
func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Svc.MaxBytes+multipartOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			h.reject(c, application.ErrFileTooLarge)
			return
		}
		h.reject(c, application.ErrNoFile)
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.Logger.WithError(err).Error("open uploaded file failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to process upload", nil)
		return
	}
	defer func() { _ = f.Close() }()

	res, err := h.Svc.Upload(c.Request.Context(), fh.Filename, f)
	if err != nil {
		h.reject(c, err)
		return
	}
	uploadsStored.Add(1)
	response.Success(c, http.StatusOK, res, "file uploaded", nil)
}

func (h *UploadHandler) reject(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrNoFile), errors.Is(err, application.ErrEmptyFile):
		uploadsRejected.Add(1)
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrUnsupportedType):
		uploadsRejected.Add(1)
		response.Error[any](c, http.StatusUnsupportedMediaType, err.Error(), map[string]any{"allowed": h.Svc.Allowed})
	case errors.Is(err, application.ErrFileTooLarge):
		uploadsRejected.Add(1)
		response.Error[any](c, http.StatusRequestEntityTooLarge, err.Error(), map[string]any{"maxBytes": h.Svc.MaxBytes})
	default:
		response.Error[any](c, http.StatusInternalServerError, "failed to store upload", nil)
	}
}
