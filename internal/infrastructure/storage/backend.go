// Package storage holds the upload backends. Exactly one is selected at
// startup; a remote one may be wrapped with a local fallback.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	gcstorage "cloud.google.com/go/storage"
	"github.com/sirupsen/logrus"
)

const (
	BackendLocal   = "local"
	BackendDataURL = "dataurl"
	BackendGCS     = "gcs"
)

// Object is a validated upload ready to be stored.
type Object struct {
	Name        string
	ContentType string
	Data        []byte
}

// Stored describes where an object ended up.
type Stored struct {
	URL     string
	Backend string
}

type Backend interface {
	Name() string
	Put(ctx context.Context, obj Object) (Stored, error)
}

// Config selects and parameterizes the backend.
type Config struct {
	Backend       string
	Dir           string
	PublicPath    string
	GCSBucket     string
	GCSPrefix     string
	FallbackLocal bool
	// Timeout bounds each store attempt, including the fallback one.
	Timeout time.Duration
}

var ErrGCSNotConfigured = errors.New("gcs not configured")

// New builds the configured backend. gcs may be nil unless cfg.Backend is "gcs".
func New(cfg Config, gcs *gcstorage.Client, logger *logrus.Logger) (Backend, error) {
	local := WithTimeout(NewLocalBackend(cfg.Dir, cfg.PublicPath), cfg.Timeout)

	var primary Backend
	switch cfg.Backend {
	case "", BackendLocal:
		return local, nil
	case BackendDataURL:
		primary = WithTimeout(NewDataURLBackend(), cfg.Timeout)
	case BackendGCS:
		if gcs == nil || cfg.GCSBucket == "" {
			return nil, ErrGCSNotConfigured
		}
		primary = WithTimeout(NewGCSBackend(gcs, cfg.GCSBucket, cfg.GCSPrefix), cfg.Timeout)
	default:
		return nil, fmt.Errorf("unknown upload backend %q", cfg.Backend)
	}

	if cfg.FallbackLocal {
		return NewFallbackBackend(primary, local, logger), nil
	}
	return primary, nil
}
