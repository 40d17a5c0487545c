package cmd

import (
	"fmt"

	"github.com/inovacc/kboard/internal/core"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Add, rename and delete lists",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var listAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Append a new list",
	Long: `Append a new empty list to the right of the board and print its ID.

Examples:
  kboard list add Backlog
  kboard list add "This Week"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := joinArgs(args)
		if err := checkTitle(title); err != nil {
			return err
		}

		svc, err := openBoard(cmd)
		if err != nil {
			return err
		}

		id, err := svc.CreateList(title)
		if err != nil {
			return err
		}

		if id == "" {
			return fmt.Errorf("list title must not be blank")
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)

		return nil
	},
}

var listRenameCmd = &cobra.Command{
	Use:   "rename <list-id> <title>",
	Short: "Rename a list",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := joinArgs(args[1:])
		if err := checkTitle(title); err != nil {
			return err
		}

		svc, err := openBoard(cmd)
		if err != nil {
			return err
		}

		if _, ok := svc.Board().List(args[0]); !ok {
			return &core.NotFoundError{Kind: "list", ID: args[0]}
		}

		return svc.RenameList(args[0], title)
	},
}

var listDeleteCmd = &cobra.Command{
	Use:     "delete <list-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a list and all of its cards",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openBoard(cmd)
		if err != nil {
			return err
		}

		if _, ok := svc.Board().List(args[0]); !ok {
			return &core.NotFoundError{Kind: "list", ID: args[0]}
		}

		return svc.DeleteList(args[0], confirmer(cmd))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.AddCommand(listAddCmd)
	listCmd.AddCommand(listRenameCmd)
	listCmd.AddCommand(listDeleteCmd)
}
