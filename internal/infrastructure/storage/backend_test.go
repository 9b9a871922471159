package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	gcstorage "cloud.google.com/go/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var png = []byte("\x89PNG\r\n\x1a\nfake")

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestLocalBackend_Put(t *testing.T) {
	dir := t.TempDir()
	b := NewLocalBackend(dir, "uploads/")

	stored, err := b.Put(context.Background(), Object{Name: "1700000000000-cover.png", ContentType: "image/png", Data: png})
	require.NoError(t, err)
	require.Equal(t, "/uploads/1700000000000-cover.png", stored.URL)
	require.Equal(t, BackendLocal, stored.Backend)

	got, err := os.ReadFile(filepath.Join(dir, "1700000000000-cover.png"))
	require.NoError(t, err)
	require.Equal(t, png, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file must not linger")
}

func TestLocalBackend_NameCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	b := NewLocalBackend(filepath.Join(dir, "up"), "/uploads")

	stored, err := b.Put(context.Background(), Object{Name: "../../evil.png", Data: png})
	require.NoError(t, err)
	require.Equal(t, "/uploads/evil.png", stored.URL)
	_, err = os.Stat(filepath.Join(dir, "up", "evil.png"))
	require.NoError(t, err)
}

func TestLocalBackend_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLocalBackend(t.TempDir(), "/uploads").Put(ctx, Object{Name: "a.png", Data: png})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDataURLBackend_Put(t *testing.T) {
	stored, err := NewDataURLBackend().Put(context.Background(), Object{Name: "a.png", ContentType: "image/png", Data: []byte("hi")})
	require.NoError(t, err)
	require.Equal(t, "data:image/png;base64,aGk=", stored.URL)
	require.Equal(t, BackendDataURL, stored.Backend)
}

func TestGCSBackend_Put(t *testing.T) {
	b := NewGCSBackend(nil, "bucket", "uploads")
	var gotPath, gotType string
	b.upload = func(_ context.Context, _ *gcstorage.Client, bucket, objectPath, contentType string, _ []byte) (string, error) {
		gotPath, gotType = objectPath, contentType
		return "https://storage.googleapis.com/" + bucket + "/" + objectPath, nil
	}

	stored, err := b.Put(context.Background(), Object{Name: "1-a.png", ContentType: "image/png", Data: png})
	require.NoError(t, err)
	require.Equal(t, "uploads/1-a.png", gotPath)
	require.Equal(t, "image/png", gotType)
	require.Equal(t, "https://storage.googleapis.com/bucket/uploads/1-a.png", stored.URL)
}

type stubBackend struct {
	name  string
	err   error
	calls int
	delay time.Duration
}

func (s *stubBackend) Name() string { return s.name }

func (s *stubBackend) Put(ctx context.Context, obj Object) (Stored, error) {
	s.calls++
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return Stored{}, ctx.Err()
		}
	}
	if s.err != nil {
		return Stored{}, s.err
	}
	return Stored{URL: s.name + "://" + obj.Name, Backend: s.name}, nil
}

func TestFallbackBackend(t *testing.T) {
	t.Run("primary succeeds", func(t *testing.T) {
		p, s := &stubBackend{name: "gcs"}, &stubBackend{name: "local"}
		stored, err := NewFallbackBackend(p, s, quietLogger()).Put(context.Background(), Object{Name: "a"})
		require.NoError(t, err)
		require.Equal(t, "gcs", stored.Backend)
		require.Equal(t, 0, s.calls)
	})

	t.Run("primary fails once, no retry", func(t *testing.T) {
		p, s := &stubBackend{name: "gcs", err: errors.New("503")}, &stubBackend{name: "local"}
		fb := NewFallbackBackend(p, s, quietLogger())
		stored, err := fb.Put(context.Background(), Object{Name: "a"})
		require.NoError(t, err)
		require.Equal(t, "local", stored.Backend)
		require.Equal(t, 1, p.calls)
		require.Equal(t, "gcs+local", fb.Name())
	})

	t.Run("both fail", func(t *testing.T) {
		p, s := &stubBackend{name: "gcs", err: errors.New("a")}, &stubBackend{name: "local", err: errors.New("disk full")}
		_, err := NewFallbackBackend(p, s, quietLogger()).Put(context.Background(), Object{Name: "a"})
		require.EqualError(t, err, "disk full")
	})
}

func TestWithTimeout(t *testing.T) {
	slow := &stubBackend{name: "gcs", delay: time.Second}
	b := WithTimeout(slow, 10*time.Millisecond)
	require.Equal(t, "gcs", b.Name())
	_, err := b.Put(context.Background(), Object{Name: "a"})
	require.ErrorIs(t, err, context.DeadlineExceeded)

	require.Same(t, slow, WithTimeout(slow, 0))
}

func TestTimedOutPrimaryStillFallsBack(t *testing.T) {
	slow := &stubBackend{name: "gcs", delay: time.Second}
	local := &stubBackend{name: "local"}
	b := NewFallbackBackend(WithTimeout(slow, 10*time.Millisecond), WithTimeout(local, time.Second), quietLogger())
	stored, err := b.Put(context.Background(), Object{Name: "a"})
	require.NoError(t, err)
	require.Equal(t, "local", stored.Backend)
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	b, err := New(Config{Dir: dir, PublicPath: "/uploads"}, nil, quietLogger())
	require.NoError(t, err)
	require.Equal(t, BackendLocal, b.Name())

	b, err = New(Config{Backend: BackendDataURL, Dir: dir, FallbackLocal: true, Timeout: time.Second}, nil, quietLogger())
	require.NoError(t, err)
	require.Equal(t, "dataurl+local", b.Name())

	_, err = New(Config{Backend: BackendGCS, Dir: dir}, nil, quietLogger())
	require.ErrorIs(t, err, ErrGCSNotConfigured)

	_, err = New(Config{Backend: "s3", Dir: dir}, nil, quietLogger())
	require.Error(t, err)
}
