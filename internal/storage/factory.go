package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

const (
	azblobScheme = "azblob://"
	s3Scheme     = "s3://"
)

// Options configures backend construction. BasePath selects the mode:
//
//	<directory>                          local filesystem
//	azblob://<container>[/<prefix>]      Azure Blob Storage
//	s3://<bucket>[/<prefix>]             S3-compatible object store
//
// An empty BasePath falls back to DefaultBasePath.
type Options struct {
	BasePath    string
	ScratchRoot string
	Azure       AzureCredentials
	S3          S3Credentials
	Logger      *log.Logger
}

// New constructs the storage backend for the process. Remote modes build
// their client eagerly so bad credentials fail at startup, not mid-operation.
func New(ctx context.Context, opts Options) (Backend, error) {
	base := strings.TrimSpace(opts.BasePath)
	if base == "" {
		base = DefaultBasePath
	}

	switch {
	case strings.HasPrefix(base, azblobScheme):
		container, prefix, err := splitRemotePath(base, azblobScheme)
		if err != nil {
			return nil, err
		}
		client, err := NewAzureClient(opts.Azure)
		if err != nil {
			return nil, err
		}
		scratch, err := ensureScratch(opts.ScratchRoot)
		if err != nil {
			return nil, err
		}
		return NewRemoteBackend(newAzureContainer(client, container), prefix, scratch, opts.Logger), nil

	case strings.HasPrefix(base, s3Scheme):
		bucket, prefix, err := splitRemotePath(base, s3Scheme)
		if err != nil {
			return nil, err
		}
		client, err := NewS3Client(ctx, opts.S3)
		if err != nil {
			return nil, err
		}
		scratch, err := ensureScratch(opts.ScratchRoot)
		if err != nil {
			return nil, err
		}
		return NewRemoteBackend(newS3Bucket(client, bucket), prefix, scratch, opts.Logger), nil

	default:
		return NewLocalBackend(base), nil
	}
}

// splitRemotePath parses <scheme><container>[/<prefix>], requiring a
// non-empty container segment.
func splitRemotePath(base, scheme string) (container, prefix string, err error) {
	raw := base[len(scheme):]
	parts := strings.SplitN(raw, "/", 2)
	if parts[0] == "" {
		return "", "", fmt.Errorf("invalid files path %q: expected %s<container>/<optional-prefix>", base, scheme)
	}
	container = parts[0]
	if len(parts) == 2 {
		prefix = normPrefix(parts[1])
	}
	return container, prefix, nil
}

// ensureScratch resolves the scratch root for temporary local copies,
// defaulting to the system temp directory, and creates it if needed.
func ensureScratch(root string) (string, error) {
	if strings.TrimSpace(root) == "" {
		root = os.TempDir()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("create scratch root: %w", err)
	}
	return root, nil
}
