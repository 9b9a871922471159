package storage

import (
	"context"

	"github.com/sirupsen/logrus"
)

// FallbackBackend tries Primary once and on failure stores with Secondary.
type FallbackBackend struct {
	Primary   Backend
	Secondary Backend
	logger    *logrus.Logger
}

func NewFallbackBackend(primary, secondary Backend, logger *logrus.Logger) *FallbackBackend {
	return &FallbackBackend{Primary: primary, Secondary: secondary, logger: logger}
}

func (b *FallbackBackend) Name() string { return b.Primary.Name() + "+" + b.Secondary.Name() }

func (b *FallbackBackend) Put(ctx context.Context, obj Object) (Stored, error) {
	stored, err := b.Primary.Put(ctx, obj)
	if err == nil {
		return stored, nil
	}
	if b.logger != nil {
		b.logger.WithError(err).WithFields(logrus.Fields{
			"backend":  b.Primary.Name(),
			"fallback": b.Secondary.Name(),
			"object":   obj.Name,
		}).Warn("upload failed, using fallback backend")
	}
	return b.Secondary.Put(ctx, obj)
}
