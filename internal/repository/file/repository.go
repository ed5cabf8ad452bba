// Package file stores each key as a file in a data directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	apperrors "task-manager/internal/errors"
	"task-manager/internal/repository"
)

// Repository writes one file per key under Dir.
type Repository struct {
	Dir string
}

var _ repository.KeyValueStore = (*Repository)(nil)

// New creates the data directory if needed and returns a repository rooted there.
func New(dir string, perm os.FileMode) (*Repository, error) {
	if err := os.MkdirAll(dir, perm); err != nil {
		return nil, apperrors.NewStorageError("create data dir", err)
	}
	return &Repository{Dir: dir}, nil
}

func (r *Repository) path(key string) string {
	return filepath.Join(r.Dir, url.PathEscape(key)+".json")
}

// Get reads the file for key.
func (r *Repository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(r.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, apperrors.NewStorageError("read "+key, err)
	}
	return b, true, nil
}

// Set writes value to a temp file and renames it over the key's file so a
// crash mid-write never leaves a truncated value behind.
func (r *Repository) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(r.Dir, ".tmp-*")
	if err != nil {
		return apperrors.NewStorageError("write "+key, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return apperrors.NewStorageError("write "+key, err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.NewStorageError("write "+key, err)
	}
	if err := os.Rename(tmpName, r.path(key)); err != nil {
		return apperrors.NewStorageError("write "+key, fmt.Errorf("rename: %w", err))
	}
	return nil
}

// Delete removes the file for key.
func (r *Repository) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(r.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return apperrors.NewStorageError("delete "+key, err)
	}
	return nil
}

// Close is a no-op; files are not held open between calls.
func (r *Repository) Close() error {
	return nil
}
