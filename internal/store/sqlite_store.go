package store

import (
	"errors"

	"github.com/inovacc/kboard/internal/store/sqlite"
)

// SQLiteWrapper wraps the sqlite.Store to implement the Store interface.
type SQLiteWrapper struct {
	store *sqlite.Store
}

// NewSQLite opens the SQLite database at path and applies migrations.
func NewSQLite(path string) (*SQLiteWrapper, error) {
	s, err := sqlite.New(path)
	if err != nil {
		return nil, err
	}

	return &SQLiteWrapper{store: s}, nil
}

func (w *SQLiteWrapper) Ping() error {
	return w.store.Ping()
}

func (w *SQLiteWrapper) Get(key string) ([]byte, error) {
	v, err := w.store.Get(key)
	if errors.Is(err, sqlite.ErrNotFound) {
		return nil, ErrNotFound
	}

	return v, err
}

func (w *SQLiteWrapper) Put(key string, value []byte) error {
	return w.store.Put(key, value)
}

func (w *SQLiteWrapper) Close() error {
	return w.store.Close()
}
