package cmd

import (
	"fmt"
	"strings"

	"github.com/inovacc/kboard/internal/core"
	"github.com/inovacc/kboard/internal/model"
	"github.com/spf13/cobra"
)

var (
	cardCategory string
	cardDue      string

	cardEditTitle    string
	cardEditCategory string
	cardEditDue      string
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Add, edit, delete and move cards",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var cardAddCmd = &cobra.Command{
	Use:   "add <list-id> <title>",
	Short: "Add a card to the end of a list",
	Long: `Add a card to the end of a list and print its ID.

Categories: assignment, lab, project, mod, unfinished. A missing or unknown
category becomes project.

Examples:
  kboard card add list-week "Read chapter 5" --category assignment --due 2026-11-03`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := joinArgs(args[1:])
		if err := checkTitle(title); err != nil {
			return err
		}

		due, err := core.ParseDueDate(cardDue)
		if err != nil {
			return err
		}

		warnCategory(cmd, cardCategory)

		svc, err := openBoard(cmd)
		if err != nil {
			return err
		}

		if _, ok := svc.Board().List(args[0]); !ok {
			return &core.NotFoundError{Kind: "list", ID: args[0]}
		}

		id, err := svc.CreateCard(args[0], title, cardCategory, due)
		if err != nil {
			return err
		}

		if id == "" {
			return fmt.Errorf("card title must not be blank")
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)

		return nil
	},
}

var cardEditCmd = &cobra.Command{
	Use:   "edit <card-id>",
	Short: "Change a card's title, category or due date",
	Long: `Change a card. Fields without a flag keep their current value.
Pass --due "" to clear the due date.

Examples:
  kboard card edit card-lab --title "Lab 3: doubly linked lists"
  kboard card edit card-lab --due ""`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openBoard(cmd)
		if err != nil {
			return err
		}

		c, ok := svc.Board().Card(args[0])
		if !ok {
			return &core.NotFoundError{Kind: "card", ID: args[0]}
		}

		edit := core.CardEdit{Title: c.Title, Category: string(c.Category)}
		if c.DueDate != nil {
			edit.DueDate = *c.DueDate
		}

		flags := cmd.Flags()

		if flags.Changed("title") {
			if strings.TrimSpace(cardEditTitle) == "" {
				return fmt.Errorf("card title must not be blank")
			}

			if err := checkTitle(cardEditTitle); err != nil {
				return err
			}

			edit.Title = cardEditTitle
		}

		if flags.Changed("category") {
			warnCategory(cmd, cardEditCategory)
			edit.Category = cardEditCategory
		}

		if flags.Changed("due") {
			if edit.DueDate, err = core.ParseDueDate(cardEditDue); err != nil {
				return err
			}
		}

		return svc.EditCard(c.ID, edit)
	},
}

var cardDeleteCmd = &cobra.Command{
	Use:     "delete <card-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a card",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openBoard(cmd)
		if err != nil {
			return err
		}

		if _, ok := svc.Board().Card(args[0]); !ok {
			return &core.NotFoundError{Kind: "card", ID: args[0]}
		}

		return svc.DeleteCard(args[0], confirmer(cmd))
	},
}

var cardMoveCmd = &cobra.Command{
	Use:     "move <card-id> <list-id>",
	Aliases: []string{"mv"},
	Short:   "Move a card to the end of another list",
	Long: `Move a card to the end of another list. Moving a card to the list it is
already in does nothing. Cards that belong to no list can be moved back
onto the board this way.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openBoard(cmd)
		if err != nil {
			return err
		}

		if _, ok := svc.Board().Card(args[0]); !ok {
			return &core.NotFoundError{Kind: "card", ID: args[0]}
		}

		if _, ok := svc.Board().List(args[1]); !ok {
			return &core.NotFoundError{Kind: "list", ID: args[1]}
		}

		return svc.MoveCardToList(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(cardCmd)

	cardCmd.AddCommand(cardAddCmd)
	cardCmd.AddCommand(cardEditCmd)
	cardCmd.AddCommand(cardDeleteCmd)
	cardCmd.AddCommand(cardMoveCmd)

	cardAddCmd.Flags().StringVarP(&cardCategory, "category", "c", "", "Card category (default project)")
	cardAddCmd.Flags().StringVarP(&cardDue, "due", "d", "", "Due date as YYYY-MM-DD")

	cardEditCmd.Flags().StringVarP(&cardEditTitle, "title", "t", "", "New title")
	cardEditCmd.Flags().StringVarP(&cardEditCategory, "category", "c", "", "New category")
	cardEditCmd.Flags().StringVarP(&cardEditDue, "due", "d", "", "New due date as YYYY-MM-DD, empty to clear")
}

// warnCategory tells the user an unknown category will not be used.
func warnCategory(cmd *cobra.Command, category string) {
	if category == "" {
		return
	}

	if _, ok := model.ParseCategory(category); !ok {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: unknown category %q, valid: %s\n", category, categoryNames())
	}
}

func categoryNames() string {
	names := make([]string, len(model.Categories))
	for i, c := range model.Categories {
		names[i] = string(c)
	}

	return strings.Join(names, ", ")
}
