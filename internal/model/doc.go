// Package model defines the data structures used throughout kboard.
//
// # Board
//
// A [Board] is the unit of persistence and export. Lists are kept in column
// order and reference cards by ID; cards live in a single map:
//
//	type Board struct {
//	    Version int              // schema tag, always 2
//	    Lists   []*List          // columns, left to right
//	    Cards   map[string]*Card // every card by ID
//	}
//
// A card ID appears in at most one list. Cards referenced by no list are
// tolerated and reported by [Board.Orphans].
//
// # Category
//
// [Category] is a closed set. Use [ParseCategory] or [CategoryOrDefault] at
// every boundary so unknown values never reach a [Card].
//
// # Config
//
// The [Config] struct holds application configuration:
//
//	type Config struct {
//	    Storage StorageConfig // backend, data dir, board and legacy keys
//	    Log     LogConfig     // slog level and format
//	    Board   BoardConfig   // entry-form limits
//	}
package model
