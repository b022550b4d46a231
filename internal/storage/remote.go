package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
)

// RemoteBackend stores workbook files in an object store under a key prefix.
// Read and write scopes stage content in a per-operation temp directory below
// the scratch root; the directory is removed when the scope ends no matter
// how it ends.
type RemoteBackend struct {
	api     blobAPI
	prefix  string
	scratch string
	logger  *log.Logger
}

var _ Backend = (*RemoteBackend)(nil)

// NewRemoteBackend wraps a container-scoped blob API. prefix may be empty;
// scratch is the root for per-operation temp directories.
func NewRemoteBackend(api blobAPI, prefix, scratch string, logger *log.Logger) *RemoteBackend {
	if logger == nil {
		logger = log.Default()
	}
	return &RemoteBackend{
		api:     api,
		prefix:  normPrefix(prefix),
		scratch: scratch,
		logger:  logger,
	}
}

func (b *RemoteBackend) key(name string) string {
	return joinKey(b.prefix, name)
}

// Normalize strips a redundant embedded prefix so callers can pass either
// bare names or fully prefixed keys.
func (b *RemoteBackend) Normalize(name string) string {
	if b.prefix != "" && len(name) > len(b.prefix)+1 && name[:len(b.prefix)+1] == b.prefix+"/" {
		return name[len(b.prefix)+1:]
	}
	return name
}

func (b *RemoteBackend) ListNames(ctx context.Context, pattern string) ([]string, error) {
	keys, err := b.api.List(ctx, b.prefix)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		name := key
		switch {
		case b.prefix != "" && len(key) > len(b.prefix)+1 && key[:len(b.prefix)+1] == b.prefix+"/":
			name = key[len(b.prefix)+1:]
		case b.prefix != "" && key == b.prefix:
			// An object stored at the bare prefix keeps its base name rather
			// than collapsing to "".
			name = path.Base(key)
		}
		names = append(names, name)
	}
	return filterNames(names, pattern)
}

func (b *RemoteBackend) Exists(ctx context.Context, name string) bool {
	if err := b.api.Stat(ctx, b.key(name)); err != nil {
		// Transient failures and true absence both read as "not stored".
		b.logger.Printf("storage: exists probe %s: %v", name, err)
		return false
	}
	return true
}

func (b *RemoteBackend) WithRead(ctx context.Context, name string, fn func(localPath string) error) error {
	tmpDir, err := os.MkdirTemp(b.scratch, "sheetbox-r-")
	if err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	localPath := filepath.Join(tmpDir, path.Base(name))
	f, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("create local copy: %w", err)
	}
	if err := b.api.Download(ctx, b.key(name), f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close local copy: %w", err)
	}
	return fn(localPath)
}

func (b *RemoteBackend) WithWrite(ctx context.Context, name string, fn func(localPath string) error) error {
	tmpDir, err := os.MkdirTemp(b.scratch, "sheetbox-w-")
	if err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	localPath := filepath.Join(tmpDir, path.Base(name))
	if err := fn(localPath); err != nil {
		// No upload: the remote object stays at its previous state.
		return err
	}
	return b.api.Upload(ctx, b.key(name), localPath, ContentTypeXLSX)
}

func (b *RemoteBackend) Delete(ctx context.Context, name string) error {
	if err := b.api.Delete(ctx, b.key(name)); err != nil {
		b.logger.Printf("storage: delete %s: %v", name, err)
	}
	return nil
}
