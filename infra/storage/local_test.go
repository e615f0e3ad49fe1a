package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amirasaad/subtracker/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pdfHeader = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")

func TestLocalStore_PutSniffsAndStores(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir)
	require.NoError(t, err)

	content := append(append([]byte{}, pdfHeader...), bytes.Repeat([]byte("x"), 5000)...)
	obj, err := s.Put(context.Background(), "Statement.PDF", bytes.NewReader(content), 1<<20)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", obj.ContentType)
	assert.Equal(t, int64(len(content)), obj.Size)
	assert.Equal(t, ".pdf", filepath.Ext(obj.Path))

	rc, err := s.Open(context.Background(), obj.Path)
	require.NoError(t, err)
	defer rc.Close() //nolint:errcheck
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestLocalStore_UniqueNames(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	a, err := s.Put(context.Background(), "a.png", strings.NewReader("one"), 100)
	require.NoError(t, err)
	b, err := s.Put(context.Background(), "a.png", strings.NewReader("two"), 100)
	require.NoError(t, err)
	assert.NotEqual(t, a.Path, b.Path)
	assert.Equal(t, "text/plain; charset=utf-8", a.ContentType)
}

func TestLocalStore_RejectsOversized(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir)
	require.NoError(t, err)

	_, err = s.Put(context.Background(), "big.jpg", bytes.NewReader(make([]byte, 101)), 100)
	require.ErrorIs(t, err, domain.ErrTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = s.Put(context.Background(), "exact.jpg", bytes.NewReader(make([]byte, 100)), 100)
	require.NoError(t, err)
}

func TestLocalStore_DeleteAndPathChecks(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	obj, err := s.Put(context.Background(), "a.jpg", strings.NewReader("data"), 100)
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), obj.Path))
	require.NoError(t, s.Delete(context.Background(), obj.Path))

	_, err = s.Open(context.Background(), obj.Path)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Open(context.Background(), "/etc/passwd")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
