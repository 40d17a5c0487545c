// Package store provides the local key-value store the board is persisted in.
//
// The package defines the [Store] interface, a flat string-keyed byte store.
// The board document and the legacy document each occupy one key; the store
// knows nothing about their contents.
//
// # Backends
//
//   - [Bolt]: a single bucket in a bbolt file (default)
//   - [SQLiteWrapper]: a kv table in a SQLite database, schema managed by
//     embedded migrations in the sqlite subpackage
//   - [Memory]: process-local map, used by tests and --backend memory
//
// Use [Open] to obtain the backend named in the storage configuration:
//
//	s, err := store.Open(cfg.Storage)
//	data, err := s.Get(cfg.Storage.BoardKey)
package store
