package cmd

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/kboard/internal/cli"
	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive board",
	Long: `Open the board in the terminal.

Keys:
  ←/→ h/l   choose list        ↑/↓ j/k   choose card
  a         add card           e/enter   edit card
  d         delete card        space     pick up / drop card
  n         new list           r         rename list
  D         delete list        R         reset board
  x         export             i         import
  ?         help               q         quit`,
	RunE: runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, _ []string) error {
	if !isTerminal(os.Stdout) {
		return errors.New("the interactive board needs a terminal, use 'kboard show' instead")
	}

	svc, err := openBoard(cmd)
	if err != nil {
		return err
	}

	m := cli.NewBoardModel(svc, current.cfg.Board.MaxTitleLength)

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()

	return err
}
