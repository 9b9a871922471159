package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalBackend writes uploads under Dir; they are served from PublicPath.
type LocalBackend struct {
	Dir        string
	PublicPath string
}

func NewLocalBackend(dir, publicPath string) *LocalBackend {
	return &LocalBackend{Dir: dir, PublicPath: "/" + strings.Trim(publicPath, "/")}
}

func (b *LocalBackend) Name() string { return BackendLocal }

func (b *LocalBackend) Put(ctx context.Context, obj Object) (Stored, error) {
	if err := ctx.Err(); err != nil {
		return Stored{}, err
	}
	name := filepath.Base(obj.Name)
	if err := os.MkdirAll(b.Dir, 0o755); err != nil {
		return Stored{}, fmt.Errorf("create upload dir: %w", err)
	}

	// write to a temp file first so a partial write never shows up under the public name
	tmp, err := os.CreateTemp(b.Dir, ".upload-*")
	if err != nil {
		return Stored{}, fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(obj.Data); err != nil {
		_ = tmp.Close()
		return Stored{}, fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return Stored{}, fmt.Errorf("close upload: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Stored{}, err
	}
	if err := os.Rename(tmp.Name(), filepath.Join(b.Dir, name)); err != nil {
		return Stored{}, fmt.Errorf("publish upload: %w", err)
	}
	_ = os.Chmod(filepath.Join(b.Dir, name), 0o644)
	return Stored{URL: path.Join(b.PublicPath, name), Backend: BackendLocal}, nil
}
