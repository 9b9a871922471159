package storage

import (
	"context"
	"time"
)

// timeoutBackend bounds every Put of the wrapped backend.
type timeoutBackend struct {
	Backend
	d time.Duration
}

// WithTimeout wraps b so that each Put gives up after d. A zero d returns b.
func WithTimeout(b Backend, d time.Duration) Backend {
	if d <= 0 {
		return b
	}
	return &timeoutBackend{Backend: b, d: d}
}

func (b *timeoutBackend) Put(ctx context.Context, obj Object) (Stored, error) {
	ctx, cancel := context.WithTimeout(ctx, b.d)
	defer cancel()
	return b.Backend.Put(ctx, obj)
}
