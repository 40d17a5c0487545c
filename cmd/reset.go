package cmd

import (
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the board with the starter board",
	Long: `Replace every list and card with the five starter lists.

Export the board first if you may want it back.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := openBoard(cmd)
		if err != nil {
			return err
		}

		return svc.Reset(confirmer(cmd))
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
