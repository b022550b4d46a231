// Package dispatch routes tool operations, written against local file paths,
// through the configured storage backend. It resolves the caller's filepath
// to a logical name, scopes a local copy for the operation, and propagates
// the operation's result untouched.
package dispatch

import (
	"context"

	"sheetbox/internal/storage"
)

// Dispatcher is the process-wide handle to the configured backend,
// constructed once at startup and threaded through the tool layer.
type Dispatcher struct {
	backend storage.Backend
}

func New(backend storage.Backend) *Dispatcher {
	return &Dispatcher{backend: backend}
}

// Resolve maps a user-supplied filepath to its logical name under the active
// backend. Filepaths that resolve to the same name refer to the same file.
func (d *Dispatcher) Resolve(filepath string) string {
	return d.backend.Normalize(storage.LogicalName(filepath))
}

// ReadCall invokes fn with a local path holding the current content of the
// file. fn's error comes back unchanged; the scope's cleanup runs either way.
func (d *Dispatcher) ReadCall(ctx context.Context, filepath string, fn func(localPath string) error) error {
	return d.backend.WithRead(ctx, d.Resolve(filepath), fn)
}

// WriteCall invokes fn with a local path to write the file to. The result is
// persisted only if fn returns nil; fn's error comes back unchanged.
func (d *Dispatcher) WriteCall(ctx context.Context, filepath string, fn func(localPath string) error) error {
	return d.backend.WithWrite(ctx, d.Resolve(filepath), fn)
}

// ListNames lists stored logical names, optionally filtered by a glob
// pattern where '*' matches any run of characters.
func (d *Dispatcher) ListNames(ctx context.Context, pattern string) ([]string, error) {
	return d.backend.ListNames(ctx, pattern)
}

// Exists reports whether the file referred to by filepath is stored.
func (d *Dispatcher) Exists(ctx context.Context, filepath string) bool {
	return d.backend.Exists(ctx, d.Resolve(filepath))
}

// Delete removes the stored file. Missing files are not an error.
func (d *Dispatcher) Delete(ctx context.Context, filepath string) error {
	return d.backend.Delete(ctx, d.Resolve(filepath))
}
