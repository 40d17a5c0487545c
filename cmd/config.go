package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/inovacc/kboard/internal/config"
	"github.com/inovacc/kboard/internal/encoding"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration kboard runs with after the config file, KBOARD_*
environment variables and flags have been applied.

Available Commands:
  init      Write the effective configuration to the config file`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := current.cfg
		out := cmd.OutOrStdout()

		_, _ = fmt.Fprintf(out, "config file:      %s\n", current.configPath)
		_, _ = fmt.Fprintf(out, "backend:          %s\n", cfg.Storage.Backend)
		_, _ = fmt.Fprintf(out, "database:         %s\n", cfg.Storage.DatabasePath())
		_, _ = fmt.Fprintf(out, "board key:        %s\n", cfg.Storage.BoardKey)
		_, _ = fmt.Fprintf(out, "legacy key:       %s\n", cfg.Storage.LegacyKey)
		_, _ = fmt.Fprintf(out, "log:              %s (%s)\n", cfg.Log.Level, cfg.Log.Format)
		_, _ = fmt.Fprintf(out, "max title length: %d\n", cfg.Board.MaxTitleLength)

		return nil
	},
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := current.configPath

		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		if err := encoding.EnsureParentDir(path); err != nil {
			return err
		}

		if err := config.Save(current.cfg, path); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing file")
}
