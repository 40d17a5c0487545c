package store

import (
	"errors"
	"fmt"

	"github.com/inovacc/kboard/internal/model"
)

var (
	// ErrNotFound is returned by Get when a key holds no value.
	ErrNotFound = errors.New("key not found")

	// ErrLocked means another process holds the database file open.
	ErrLocked = errors.New("database is locked by another process")
)

// Store is the local key-value store the board document lives in.
type Store interface {
	Ping() error
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}

// Open returns the backend selected by cfg.
func Open(cfg model.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case model.BackendBolt, "":
		return NewBolt(cfg.DatabasePath())
	case model.BackendSQLite:
		return NewSQLite(cfg.DatabasePath())
	case model.BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
