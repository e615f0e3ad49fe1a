// Package storage keeps uploaded files on the local filesystem.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/amirasaad/subtracker/pkg/domain"
	"github.com/amirasaad/subtracker/pkg/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// sniffLen is how much of the content is read for MIME detection.
const sniffLen = 3072

// LocalStore writes blobs into a single directory.
type LocalStore struct {
	dir string
}

// NewLocalStore creates dir if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return &LocalStore{dir: abs}, nil
}

// Put implements storage.BlobStore. Files are named
// "<unix millis>-<random><ext>" so concurrent uploads of the same name never collide.
func (s *LocalStore) Put(ctx context.Context, fileName string, r io.Reader, limit int64) (storage.Object, error) {
	if err := ctx.Err(); err != nil {
		return storage.Object{}, err
	}
	header := make([]byte, sniffLen)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return storage.Object{}, fmt.Errorf("read %s: %w", fileName, err)
	}
	header = header[:n]
	contentType := mimetype.Detect(header).String()

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8],
		strings.ToLower(filepath.Ext(fileName)))
	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return storage.Object{}, fmt.Errorf("create %s: %w", path, err)
	}

	body := io.MultiReader(bytes.NewReader(header), r)
	written, err := io.Copy(f, io.LimitReader(body, limit+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && written > limit {
		err = fmt.Errorf("%w: %s exceeds %d bytes", domain.ErrTooLarge, fileName, limit)
	}
	if err != nil {
		os.Remove(path) //nolint:errcheck
		return storage.Object{}, err
	}
	return storage.Object{Path: path, Size: written, ContentType: contentType}, nil
}

// Open implements storage.BlobStore.
func (s *LocalStore) Open(_ context.Context, path string) (io.ReadCloser, error) {
	if err := s.check(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: blob %s", domain.ErrNotFound, filepath.Base(path))
	}
	return f, err
}

// Delete implements storage.BlobStore. Deleting a missing blob is not an error.
func (s *LocalStore) Delete(_ context.Context, path string) error {
	if err := s.check(path); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStore) check(path string) error {
	rel, err := filepath.Rel(s.dir, path)
	if err != nil || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return fmt.Errorf("%w: path outside upload dir", domain.ErrValidation)
	}
	return nil
}
