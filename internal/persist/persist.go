// Package persist loads and saves the board in the key-value store.
//
// Start-up follows a fixed fallback: a current-schema document always wins,
// then a one-time migration of the legacy document, then the starter board.
package persist

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/inovacc/kboard/internal/encoding"
	"github.com/inovacc/kboard/internal/model"
	"github.com/inovacc/kboard/internal/store"
)

// ErrSave wraps every failure to write the board.
var ErrSave = errors.New("saving board")

// Source tells where Initialize found the board.
type Source int

const (
	SourceSaved Source = iota
	SourceMigrated
	SourceSeeded
)

func (s Source) String() string {
	switch s {
	case SourceSaved:
		return "saved"
	case SourceMigrated:
		return "migrated"
	case SourceSeeded:
		return "seeded"
	}

	return "unknown"
}

// Keys names the two storage slots.
type Keys struct {
	Board  string
	Legacy string
}

// Adapter reads and writes the board document.
type Adapter struct {
	kv    store.Store
	keys  Keys
	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) { a.now = now }
}

// WithIDs overrides the ID generator.
func WithIDs(newID func() string) Option {
	return func(a *Adapter) { a.newID = newID }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) { a.log = l }
}

// New returns an Adapter over kv.
func New(kv store.Store, keys Keys, opts ...Option) *Adapter {
	a := &Adapter{
		kv:    kv,
		keys:  keys,
		log:   slog.Default(),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

func (a *Adapter) normalizeOptions(legacy bool) encoding.Options {
	return encoding.Options{Now: a.now, NewID: a.newID, Legacy: legacy}
}

// Load returns the saved board. Missing, unreadable, non-JSON or
// wrong-version documents all count as no saved state.
func (a *Adapter) Load() (*model.Board, bool) {
	data, err := a.kv.Get(a.keys.Board)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			a.log.Warn("reading saved board", "key", a.keys.Board, "error", err)
		}

		return nil, false
	}

	if v, ok := encoding.Version(data); !ok || v != model.SchemaVersion {
		a.log.Debug("ignoring saved board with unexpected version", "key", a.keys.Board)
		return nil, false
	}

	b, err := encoding.Normalize(data, a.normalizeOptions(false))
	if err != nil {
		a.log.Debug("ignoring malformed saved board", "key", a.keys.Board, "error", err)
		return nil, false
	}

	return b, true
}

// MigrateLegacy converts the legacy document and saves the result under the
// current key. The legacy key is never modified. A failed save is logged and
// the migrated board is still returned.
func (a *Adapter) MigrateLegacy() (*model.Board, bool) {
	data, err := a.kv.Get(a.keys.Legacy)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			a.log.Warn("reading legacy board", "key", a.keys.Legacy, "error", err)
		}

		return nil, false
	}

	if !encoding.IsLegacyDocument(data) {
		a.log.Debug("legacy board is not plausible", "key", a.keys.Legacy)
		return nil, false
	}

	b, err := encoding.Normalize(data, a.normalizeOptions(true))
	if err != nil {
		return nil, false
	}

	if err := a.Save(b); err != nil {
		a.log.Warn("persisting migrated board", "error", err)
	}

	a.log.Info("migrated legacy board", "lists", len(b.Lists), "cards", len(b.Cards))

	return b, true
}

// Save overwrites the current key with the full board.
func (a *Adapter) Save(b *model.Board) error {
	data, err := encoding.ToJSON(b)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	if err := a.kv.Put(a.keys.Board, data); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	return nil
}

// Initialize returns the saved board, else the migrated legacy board, else a
// freshly saved starter board. Only a failure to save the starter board is
// returned, together with the board itself.
func (a *Adapter) Initialize() (*model.Board, Source, error) {
	if b, ok := a.Load(); ok {
		a.log.Debug("loaded board", "source", SourceSaved)
		return b, SourceSaved, nil
	}

	if b, ok := a.MigrateLegacy(); ok {
		return b, SourceMigrated, nil
	}

	b := Starter(a.now())
	a.log.Debug("seeded starter board", "source", SourceSeeded)

	return b, SourceSeeded, a.Save(b)
}
