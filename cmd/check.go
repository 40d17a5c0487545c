package cmd

import (
	"errors"
	"fmt"

	"github.com/inovacc/kboard/internal/encoding"
	"github.com/spf13/cobra"
)

var errCheckFailed = errors.New("document does not match the board schema")

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check an export against the board schema",
	Long: `Check a JSON document against the current board schema without importing it.

Every violation is listed with its path. A document that fails the check can
usually still be imported: the import fills in or drops what the check
reports. Exits non-zero when the document does not match.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}

		res, err := encoding.Validate(data)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		if res.Legacy {
			_, _ = fmt.Fprintln(out, "Document uses the legacy format and will be migrated on import")
		}

		if res.Valid {
			_, _ = fmt.Fprintln(out, "OK")
			return nil
		}

		for _, e := range res.Errors {
			_, _ = fmt.Fprintf(out, "  %s\n", e)
		}

		return fmt.Errorf("%w: %d problem(s)", errCheckFailed, len(res.Errors))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
