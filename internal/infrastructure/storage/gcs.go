package storage

import (
	"bytes"
	"context"
	"path"

	gcstorage "cloud.google.com/go/storage"

	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

// GCSBackend uploads to a public Google Cloud Storage bucket.
type GCSBackend struct {
	client *gcstorage.Client
	bucket string
	prefix string
	upload func(ctx context.Context, client *gcstorage.Client, bucket, objectPath, contentType string, data []byte) (string, error)
}

func NewGCSBackend(client *gcstorage.Client, bucket, prefix string) *GCSBackend {
	return &GCSBackend{client: client, bucket: bucket, prefix: prefix, upload: uploadToGCS}
}

func (b *GCSBackend) Name() string { return BackendGCS }

func (b *GCSBackend) Put(ctx context.Context, obj Object) (Stored, error) {
	objectPath := path.Join(b.prefix, obj.Name)
	url, err := b.upload(ctx, b.client, b.bucket, objectPath, obj.ContentType, obj.Data)
	if err != nil {
		return Stored{}, err
	}
	return Stored{URL: url, Backend: BackendGCS}, nil
}

func uploadToGCS(ctx context.Context, client *gcstorage.Client, bucket, objectPath, contentType string, data []byte) (string, error) {
	if err := helpers.WriteObject(ctx, client.Bucket(bucket).Object(objectPath), contentType, bytes.NewReader(data)); err != nil {
		return "", err
	}
	return helpers.ObjectURL(bucket, objectPath), nil
}
