// Package storage keeps the files behind documents and ticket attachments.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/agency-portal/config"
)

// ErrNotFound is returned when no object is stored under the key
var ErrNotFound = errors.New("object not found")

// Store is an object store addressed by slash separated keys
type Store interface {
	// Put writes r under key, replacing what was there
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Open returns the object body; the caller closes it
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// New builds the store selected by cfg.Driver
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "local", "":
		return NewFileStore(cfg.LocalPath)
	case "s3":
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}

// ObjectKey builds the key of an uploaded file: <kind>/<owner>/<id>-<name>.
// The file name is reduced to its base so it cannot climb out of the prefix.
func ObjectKey(kind, owner, id, fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		name = "file"
	}
	return path.Join(kind, owner, id+"-"+name)
}

func cleanKey(key string) (string, error) {
	k := path.Clean("/" + key)
	if k == "/" {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return strings.TrimPrefix(k, "/"), nil
}
