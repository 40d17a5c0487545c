// Package cli draws the board and runs the interactive board view.
//
// [RenderBoard] is a pure function of the board: every list becomes a
// lipgloss column and the whole board is redrawn after each change.
// [BoardModel] is a Bubbletea model over a core.Service. It never mutates
// the board itself; forms, confirmations and the pick-up/drop move all end
// in a Service call.
//
// # Moving cards
//
// A move is split in two steps that only exchange IDs. Picking up a card
// records its ID; dropping it on a column passes that ID and the column's
// list ID to core.Service.MoveCardToList.
//
// # Imports
//
// Import files are read inside a tea.Cmd. The board is replaced only when
// the resulting message reaches Update, so keys pressed meanwhile act on
// the old board.
package cli
