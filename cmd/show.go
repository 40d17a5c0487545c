package cmd

import (
	"fmt"

	"github.com/inovacc/kboard/internal/cli"
	"github.com/spf13/cobra"
)

var showIDs bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the board",
	Long: `Print every list and card once and exit.

Use --ids to see the list and card IDs the other commands take.`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showIDs, "ids", false, "Show list and card IDs")
}

func runShow(cmd *cobra.Command, _ []string) error {
	svc, err := openBoard(cmd)
	if err != nil {
		return err
	}

	opts := cli.StaticOptions(terminalWidth())
	opts.ShowIDs = showIDs

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, cli.RenderBoard(svc.Board(), opts))

	if orphans := cli.RenderOrphans(svc.Board()); orphans != "" {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprint(out, orphans)
	}

	return nil
}
