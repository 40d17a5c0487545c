// Package config resolves the effective configuration from defaults, the ini
// file, KBOARD_* environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/inovacc/kboard/internal/model"
	"github.com/spf13/pflag"
	"gopkg.in/ini.v1"
)

// Flag names bound by BindFlags.
const (
	FlagConfig    = "config"
	FlagBackend   = "backend"
	FlagDataDir   = "data-dir"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
)

// BindFlags registers the configuration flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "path to kboard.ini (default: application directory)")
	fs.String(FlagBackend, "", "storage backend: bolt, sqlite or memory")
	fs.String(FlagDataDir, "", "directory holding the database file")
	fs.String(FlagLogLevel, "", "log level: debug, info, warn or error")
	fs.String(FlagLogFormat, "", "log format: auto, text or json")
}

// Load builds the configuration. A missing file at path is not an error.
// fs may be nil.
func Load(path string, fs *pflag.FlagSet) (model.Config, error) {
	cfg := model.DefaultConfig()

	if path != "" {
		if err := loadFile(&cfg, path); err != nil {
			return cfg, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if fs != nil {
		applyFlags(&cfg, fs)
	}

	if err := Validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func loadFile(cfg *model.Config, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	f, err := ini.Load(path)
	if err != nil {
		return err
	}

	if err := f.Section("storage").MapTo(&cfg.Storage); err != nil {
		return err
	}

	if err := f.Section("log").MapTo(&cfg.Log); err != nil {
		return err
	}

	return f.Section("board").MapTo(&cfg.Board)
}

func applyFlags(cfg *model.Config, fs *pflag.FlagSet) {
	set := func(name string, dst *string) {
		if f := fs.Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}

	set(FlagBackend, &cfg.Storage.Backend)
	set(FlagDataDir, &cfg.Storage.DataDir)
	set(FlagLogLevel, &cfg.Log.Level)
	set(FlagLogFormat, &cfg.Log.Format)
}

// Validate rejects configurations the app cannot run with.
func Validate(cfg model.Config) error {
	switch cfg.Storage.Backend {
	case model.BackendBolt, model.BackendSQLite, model.BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	if strings.TrimSpace(cfg.Storage.BoardKey) == "" {
		return errors.New("storage.board_key must not be empty")
	}

	if cfg.Storage.BoardKey == cfg.Storage.LegacyKey {
		return errors.New("storage.board_key and storage.legacy_key must differ")
	}

	if cfg.Board.MaxTitleLength <= 0 {
		return fmt.Errorf("board.max_title_length must be positive, got %d", cfg.Board.MaxTitleLength)
	}

	return nil
}

// Save writes cfg to path as ini.
func Save(cfg model.Config, path string) error {
	f := ini.Empty()

	if err := f.Section("storage").ReflectFrom(&cfg.Storage); err != nil {
		return err
	}

	if err := f.Section("log").ReflectFrom(&cfg.Log); err != nil {
		return err
	}

	if err := f.Section("board").ReflectFrom(&cfg.Board); err != nil {
		return err
	}

	return f.SaveTo(path)
}
