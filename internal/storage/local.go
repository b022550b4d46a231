package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalBackend stores workbook files directly under a base directory. The
// local path handed to read and write scopes is the permanent artifact path,
// so no copy or cleanup is needed.
type LocalBackend struct {
	base string
}

var _ Backend = (*LocalBackend)(nil)

// NewLocalBackend returns a backend rooted at base. The directory is not
// required to exist yet; writes create it on demand.
func NewLocalBackend(base string) *LocalBackend {
	return &LocalBackend{base: base}
}

// Base returns the configured base directory.
func (b *LocalBackend) Base() string { return b.base }

func (b *LocalBackend) Normalize(name string) string { return name }

func (b *LocalBackend) path(name string) string {
	return filepath.Join(b.base, filepath.FromSlash(name))
}

func (b *LocalBackend) ListNames(_ context.Context, pattern string) ([]string, error) {
	names := []string{}
	info, err := os.Stat(b.base)
	if err != nil || !info.IsDir() {
		return names, nil
	}
	err = filepath.WalkDir(b.base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(b.base, p)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return filterNames(names, pattern)
}

func (b *LocalBackend) Exists(_ context.Context, name string) bool {
	_, err := os.Stat(b.path(name))
	return err == nil
}

func (b *LocalBackend) WithRead(_ context.Context, name string, fn func(localPath string) error) error {
	p := b.path(name)
	if _, err := os.Stat(p); err != nil {
		return err
	}
	return fn(p)
}

func (b *LocalBackend) WithWrite(_ context.Context, name string, fn func(localPath string) error) error {
	dest := b.path(name)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	// The written file already is the artifact; nothing to do after fn.
	return fn(dest)
}

func (b *LocalBackend) Delete(_ context.Context, name string) error {
	err := os.Remove(b.path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
