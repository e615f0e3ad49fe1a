// Package filestore is a persistence backend that keeps each collection in
// one JSON document on disk. Every read-modify-write of a collection runs
// under that collection's mutex; writes go to a temp file that is renamed
// over the document.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/amirasaad/subtracker/pkg/domain/payment"
	"github.com/amirasaad/subtracker/pkg/domain/reminder"
	"github.com/amirasaad/subtracker/pkg/domain/upload"
	"github.com/amirasaad/subtracker/pkg/domain/user"
)

// Store owns the collections under one data directory.
type Store struct {
	dir       string
	users     *collection[user.User]
	uploads   *collection[upload.Upload]
	payments  *collection[payment.RecurringPayment]
	reminders *collection[reminder.Reminder]
	history   *collection[reminder.History]
}

// New creates the data directory if needed and returns a Store rooted at it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &Store{
		dir:       dir,
		users:     newCollection[user.User](dir, "users.json"),
		uploads:   newCollection[upload.Upload](dir, "uploads.json"),
		payments:  newCollection[payment.RecurringPayment](dir, "recurring_payments.json"),
		reminders: newCollection[reminder.Reminder](dir, "reminders.json"),
		history:   newCollection[reminder.History](dir, "reminder_history.json"),
	}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

type collection[T any] struct {
	mu   sync.Mutex
	path string
}

func newCollection[T any](dir, name string) *collection[T] {
	return &collection[T]{path: filepath.Join(dir, name)}
}

// view runs fn over a snapshot of the collection.
func (c *collection[T]) view(ctx context.Context, fn func(items []T) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.read()
	if err != nil {
		return err
	}
	return fn(items)
}

// update runs fn and persists the slice it returns. Nothing is written when
// fn fails.
func (c *collection[T]) update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.read()
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return c.write(items)
}

func (c *collection[T]) read() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	var items []T
	if len(data) == 0 {
		return []T{}, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.path, err)
	}
	return items, nil
}

func (c *collection[T]) write(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(c.path), filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", c.path, err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck
	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("replace %s: %w", c.path, err)
	}
	return nil
}
