package storage

import (
	"context"
	"encoding/base64"
)

// DataURLBackend stores nothing; the payload is inlined into the reference.
type DataURLBackend struct{}

func NewDataURLBackend() *DataURLBackend { return &DataURLBackend{} }

func (b *DataURLBackend) Name() string { return BackendDataURL }

func (b *DataURLBackend) Put(ctx context.Context, obj Object) (Stored, error) {
	if err := ctx.Err(); err != nil {
		return Stored{}, err
	}
	url := "data:" + obj.ContentType + ";base64," + base64.StdEncoding.EncodeToString(obj.Data)
	return Stored{URL: url, Backend: BackendDataURL}, nil
}
