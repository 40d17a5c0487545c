package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/inovacc/kboard/internal/application"
	"github.com/inovacc/kboard/internal/config"
	"github.com/inovacc/kboard/internal/core"
	"github.com/inovacc/kboard/internal/model"
	"github.com/inovacc/kboard/internal/persist"
	"github.com/inovacc/kboard/internal/process"
	"github.com/inovacc/kboard/internal/store"
	"github.com/spf13/cobra"
)

var assumeYes bool

// session is what a command run works with. It is built lazily so commands
// that never touch the board never open the store.
type session struct {
	cfg        model.Config
	configPath string
	log        *slog.Logger
	kv         store.Store
	svc        *core.Service
}

var current *session

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "A local-first kanban board for the terminal",
	Long: `kboard keeps a kanban board of lists and cards in a local key-value store.

Run it without a command to open the interactive board, or use the commands
below to script changes.`,
	Version:           application.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSession,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeSession()
	},
	RunE: runDefault,
}

func Execute() {
	err := rootCmd.Execute()

	// post-run is skipped when RunE fails
	_ = closeSession()

	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	config.BindFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to every confirmation")
}

func loadSession(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString(config.FlagConfig)
	if err != nil {
		return err
	}

	if path == "" {
		if path, err = application.ConfigFilePath(); err != nil {
			return err
		}
	} else if path, err = expandPath(path); err != nil {
		return err
	}

	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return err
	}

	if cfg.Storage.DataDir, err = expandPath(cfg.Storage.DataDir); err != nil {
		return fmt.Errorf("data directory: %w", err)
	}

	logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	slog.SetDefault(logger)

	current = &session{cfg: cfg, configPath: path, log: logger}

	return nil
}

// openBoard opens the store and loads the board for commands that need it.
// Service notifications are written to stderr.
func openBoard(cmd *cobra.Command) (*core.Service, error) {
	if current == nil {
		return nil, errors.New("configuration not loaded")
	}

	if current.svc != nil {
		return current.svc, nil
	}

	cfg := current.cfg

	kv, err := store.Open(cfg.Storage)
	if errors.Is(err, store.ErrLocked) {
		return nil, lockedError(err)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrStorage, err)
	}

	if err := kv.Ping(); err != nil {
		_ = kv.Close()

		return nil, fmt.Errorf("%w: %w", core.ErrStorage, err)
	}

	current.kv = kv

	logger := current.log.With("backend", cfg.Storage.Backend)
	adapter := persist.New(kv,
		persist.Keys{Board: cfg.Storage.BoardKey, Legacy: cfg.Storage.LegacyKey},
		persist.WithLogger(logger),
	)

	svc, src, err := core.Open(adapter,
		core.WithLogger(logger),
		core.WithNotifier(func(msg string) {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), msg)
		}),
	)
	if err != nil {
		return nil, err
	}

	logger.Info("board loaded", "source", src)

	if src == persist.SourceMigrated {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Migrated board from the previous storage format")
	}

	current.svc = svc

	return svc, nil
}

// lockedError names the other kboard processes holding the database.
func lockedError(err error) error {
	p := process.NewProcess()
	if perr := p.ListProcesses(); perr != nil {
		return fmt.Errorf("%w: %w", core.ErrStorage, err)
	}

	others := p.Others(application.AppName)
	if len(others) == 0 {
		return fmt.Errorf("%w: %w", core.ErrStorage, err)
	}

	pids := make([]string, len(others))
	for i, o := range others {
		pids[i] = strconv.Itoa(o.PID)
	}

	return fmt.Errorf("%w: %w (kboard running as pid %s, close it first)", core.ErrStorage, err, strings.Join(pids, ", "))
}

func closeSession() error {
	if current == nil || current.kv == nil {
		current = nil
		return nil
	}

	err := current.kv.Close()
	current = nil

	return err
}

func runDefault(cmd *cobra.Command, args []string) error {
	if isTerminal(os.Stdout) && isTerminal(os.Stdin) {
		return runBoard(cmd, args)
	}

	return runShow(cmd, args)
}
