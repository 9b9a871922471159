package application

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/infrastructure/storage"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

type UploadService struct {
	Backend  storage.Backend
	MaxBytes int64
	Allowed  []string
	Logger   *logrus.Logger
	now      func() time.Time
}

func NewUploadService(backend storage.Backend, maxBytes int64, allowed []string, logger *logrus.Logger) *UploadService {
	return &UploadService{Backend: backend, MaxBytes: maxBytes, Allowed: allowed, Logger: logger, now: time.Now}
}

type UploadResult struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Backend     string `json:"backend"`
}

// Upload reads at most MaxBytes from r, sniffs the content type and hands
// the bytes to the configured backend. The client supplied name only
// contributes the stem of the stored filename; the extension always follows
// the sniffed type.
func (s *UploadService) Upload(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.MaxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.MaxBytes {
		return nil, ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	mt := mimetype.Detect(data)
	if !s.allowed(mt) {
		s.Logger.WithFields(logrus.Fields{"filename": filename, "detected": mt.String()}).Info("upload rejected")
		return nil, ErrUnsupportedType
	}

	obj := storage.Object{
		Name:        helpers.StoredFilename(s.now(), filename, mt.Extension()),
		ContentType: baseType(mt),
		Data:        data,
	}
	st, err := s.Backend.Put(ctx, obj)
	if err != nil {
		s.Logger.WithError(err).WithField("backend", s.Backend.Name()).Error("store upload failed")
		return nil, err
	}
	return &UploadResult{
		URL:         st.URL,
		Filename:    obj.Name,
		ContentType: obj.ContentType,
		Size:        int64(len(data)),
		Backend:     st.Backend,
	}, nil
}

func (s *UploadService) allowed(mt *mimetype.MIME) bool {
	for _, t := range s.Allowed {
		if mt.Is(t) {
			return true
		}
	}
	return false
}

// baseType drops parameters such as "; charset=utf-8".
func baseType(mt *mimetype.MIME) string {
	v, _, _ := strings.Cut(mt.String(), ";")
	return strings.TrimSpace(v)
}
