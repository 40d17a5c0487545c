package model

import (
	"path/filepath"

	"github.com/inovacc/kboard/internal/application"
)

// Storage backends.
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// StorageConfig selects the key-value store and the keys the board lives under.
type StorageConfig struct {
	// Backend is one of bolt, sqlite or memory
	Backend string `ini:"backend" env:"KBOARD_BACKEND"`

	// DataDir holds the database file
	DataDir string `ini:"data_dir" env:"KBOARD_DATA_DIR"`

	// BoardKey is the current-schema key
	BoardKey string `ini:"board_key" env:"KBOARD_BOARD_KEY"`

	// LegacyKey is read once for migration and never written
	LegacyKey string `ini:"legacy_key" env:"KBOARD_LEGACY_KEY"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `ini:"level" env:"KBOARD_LOG_LEVEL"`
	Format string `ini:"format" env:"KBOARD_LOG_FORMAT"`
}

// BoardConfig holds entry-form limits.
type BoardConfig struct {
	MaxTitleLength int `ini:"max_title_length" env:"KBOARD_MAX_TITLE_LENGTH"`
}

// Config holds the application configuration
type Config struct {
	Storage StorageConfig
	Log     LogConfig
	Board   BoardConfig
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	dataDir, err := application.GetApplicationDirectory()
	if err != nil {
		dataDir = "."
	}

	return Config{
		Storage: StorageConfig{
			Backend:   BackendBolt,
			DataDir:   dataDir,
			BoardKey:  "kboard/board.v2",
			LegacyKey: "kboard/board",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "auto",
		},
		Board: BoardConfig{
			MaxTitleLength: 160,
		},
	}
}

// DatabasePath returns the file backing the configured backend.
func (c StorageConfig) DatabasePath() string {
	switch c.Backend {
	case BackendSQLite:
		return filepath.Join(c.DataDir, application.AppName+".db")
	case BackendMemory:
		return ""
	default:
		return filepath.Join(c.DataDir, application.AppName+".bolt")
	}
}
