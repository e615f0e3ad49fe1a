// Package storage defines where raw uploaded bytes are kept.
package storage

import (
	"context"
	"io"
)

// Object describes stored content.
type Object struct {
	// Path locates the object inside the store. It is never shown to clients.
	Path        string
	Size        int64
	ContentType string
}

// BlobStore persists uploaded file contents.
type BlobStore interface {
	// Put stores at most limit bytes read from r. Content larger than limit is
	// rejected with domain.ErrTooLarge and nothing is kept.
	Put(ctx context.Context, fileName string, r io.Reader, limit int64) (Object, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}
