package storage

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultBasePath is used when no files path is configured.
const DefaultBasePath = "./excel_files"

// ContentTypeXLSX is the content type attached to uploaded workbooks.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Backend abstracts where workbook files live. Tool functions are written
// against local paths; a Backend produces a local path that holds current
// content for the duration of a read or write scope, whether the file is on
// local disk or in a remote object store.
type Backend interface {
	// Normalize applies backend-specific name normalization. Remote backends
	// strip a redundant key prefix so callers can pass bare or prefixed names
	// interchangeably; the local backend is a no-op.
	Normalize(name string) string

	// ListNames returns the logical names of all stored files. pattern is a
	// glob where '*' matches any run of characters and everything else,
	// including '.', is literal; empty pattern means no filtering.
	ListNames(ctx context.Context, pattern string) ([]string, error)

	// Exists reports whether a logical name is stored. Remote probe failures
	// of any kind count as absent.
	Exists(ctx context.Context, name string) bool

	// WithRead invokes fn with a local path containing the current content of
	// name. The path is only valid inside fn; any temporary copy is removed
	// when WithRead returns, on every exit path.
	WithRead(ctx context.Context, name string, fn func(localPath string) error) error

	// WithWrite invokes fn with a local path to write to. If fn returns nil
	// the result is durably persisted (uploaded, for remote backends) before
	// WithWrite returns; if fn fails nothing is persisted. Temporary
	// resources are released on every exit path.
	WithWrite(ctx context.Context, name string, fn func(localPath string) error) error

	// Delete removes a stored file. Deleting a name that does not exist is
	// not an error; remote backends treat deletion as best-effort.
	Delete(ctx context.Context, name string) error
}

// LogicalName maps a user-supplied filepath to a backend-independent logical
// name: forward-slash separated, no leading slash. Absolute paths keep only
// the final segment. Empty input yields an empty name; the failure surfaces
// later, from the path join it would poison.
func LogicalName(fp string) string {
	n := strings.TrimSpace(fp)
	if n == "" {
		return ""
	}
	if filepath.IsAbs(n) {
		n = filepath.Base(n)
	}
	n = strings.ReplaceAll(n, "\\", "/")
	return strings.TrimLeft(n, "/")
}

// translatePattern compiles a listing glob. '*' becomes '.*', every other
// character is literal, and the match is anchored at both ends.
func translatePattern(pattern string) (*regexp.Regexp, error) {
	quoted := regexp.QuoteMeta(pattern)
	return regexp.Compile("^" + strings.ReplaceAll(quoted, `\*`, ".*") + "$")
}

// filterNames applies a listing glob to names, preserving order. An empty
// pattern passes everything through.
func filterNames(names []string, pattern string) ([]string, error) {
	if pattern == "" {
		return names, nil
	}
	rx, err := translatePattern(pattern)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if rx.MatchString(n) {
			out = append(out, n)
		}
	}
	return out, nil
}

// normPrefix canonicalizes a remote key prefix: no surrounding whitespace,
// no leading or trailing slashes, "" when nothing remains.
func normPrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}

// joinKey maps a logical name to a remote object key under prefix.
func joinKey(prefix, name string) string {
	name = strings.TrimLeft(name, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
