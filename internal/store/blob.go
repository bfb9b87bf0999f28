package store

import "context"

// BlobStore stores uploaded files by key.
type BlobStore interface {
	// Put writes data under key, replacing any existing blob.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Delete removes the blob under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
