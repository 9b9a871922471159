package helpers

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const gcsPublicHost = "https://storage.googleapis.com"

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	var opts []option.ClientOption
	if credsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credsPath))
	}
	return storage.NewClient(ctx, opts...)
}

// WriteObject streams r into obj. Objects are immutable once written, so they
// are served with a long cache lifetime.
func WriteObject(ctx context.Context, obj *storage.ObjectHandle, contentType string, r io.Reader) error {
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=31536000, immutable"
	wc.ChunkSize = 0
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return fmt.Errorf("gcs write %s: %w", obj.ObjectName(), err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("gcs close %s: %w", obj.ObjectName(), err)
	}
	return nil
}

// ObjectURL is the public URL of bucket/objectPath, one escaped segment at a time.
func ObjectURL(bucket, objectPath string) string {
	segs := strings.Split(strings.TrimPrefix(objectPath, "/"), "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return gcsPublicHost + "/" + url.PathEscape(bucket) + "/" + strings.Join(segs, "/")
}
