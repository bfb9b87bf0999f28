package blob

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/soloadmin/admin-api/internal/store"
	"github.com/spf13/afero"
)

// ErrInvalidKey is returned for keys that are empty, absolute or escape the store root.
var ErrInvalidKey = errors.New("invalid blob key")

// DiskStore keeps blobs in a directory tree rooted at a base path.
type DiskStore struct {
	fs afero.Fs
}

var _ store.BlobStore = (*DiskStore)(nil)

// NewDiskStore creates a store rooted at dir on the local filesystem.
func NewDiskStore(dir string) *DiskStore {
	return NewDiskStoreFs(afero.NewBasePathFs(afero.NewOsFs(), dir))
}

// NewDiskStoreFs creates a store on top of an arbitrary afero filesystem.
func NewDiskStoreFs(fs afero.Fs) *DiskStore {
	return &DiskStore{fs: fs}
}

// Put writes data under key, creating parent directories as needed.
func (s *DiskStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if dir := path.Dir(key); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create blob directory: %w", err)
		}
	}
	if err := afero.WriteFile(s.fs, key, data, 0o644); err != nil {
		return fmt.Errorf("failed to write blob: %w", err)
	}
	return nil
}

// Delete removes the blob under key. A missing blob is not an error.
func (s *DiskStore) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := s.fs.Remove(key); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

// Handler serves stored blobs read-only. Mount it with the URL prefix stripped.
func (s *DiskStore) Handler() http.Handler {
	return http.FileServer(afero.NewHttpFs(afero.NewReadOnlyFs(s.fs)))
}

func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || path.Clean(key) != key {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}
