package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/inovacc/kboard/internal/model"
)

const (
	minColumnWidth     = 22
	maxColumnWidth     = 36
	defaultColumnWidth = 30
)

// RenderOptions controls how a board is drawn.
type RenderOptions struct {
	// Width of the terminal. Zero uses a fixed column width.
	Width int

	// Now anchors relative due and created labels.
	Now time.Time

	// Cursor highlights a list and a card in it. Negative values disable it.
	List int
	Card int

	// Held is the card being moved, drawn faint until it is dropped.
	Held string

	// ShowIDs prints list and card IDs for use with the command line.
	ShowIDs bool
}

// StaticOptions returns options for a one-shot render with no cursor.
func StaticOptions(width int) RenderOptions {
	return RenderOptions{Width: width, Now: time.Now(), List: -1, Card: -1}
}

// RenderBoard draws every list as a column, left to right in board order.
func RenderBoard(b *model.Board, opts RenderOptions) string {
	if len(b.Lists) == 0 {
		return dimStyle.Render("No lists yet.") + "\n" + footer(b)
	}

	width := columnWidth(opts.Width, len(b.Lists))

	cols := make([]string, 0, len(b.Lists))
	for i, l := range b.Lists {
		cols = append(cols, renderColumn(b, l, i, width, opts))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cols...) + "\n" + footer(b)
}

func columnWidth(total, lists int) int {
	if total <= 0 {
		return defaultColumnWidth
	}

	frame := columnStyle.GetHorizontalFrameSize()

	w := total/lists - frame
	if w < minColumnWidth {
		return minColumnWidth
	}

	if w > maxColumnWidth {
		return maxColumnWidth
	}

	return w
}

func renderColumn(b *model.Board, l *model.List, index, width int, opts RenderOptions) string {
	var sb strings.Builder

	sb.WriteString(listTitleStyle.Render(truncate(l.Title, width-5)))
	sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%d)", len(l.CardIDs))))
	sb.WriteString("\n")

	if opts.ShowIDs {
		sb.WriteString(dimStyle.Render(truncate(l.ID, width)))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(strings.Repeat("─", width)))
	sb.WriteString("\n")

	cards := b.CardsOf(l)
	if len(cards) == 0 {
		sb.WriteString(dimStyle.Render("empty"))
	}

	for j, c := range cards {
		style := cardStyle

		switch {
		case c.ID == opts.Held:
			style = heldCardStyle
		case index == opts.List && j == opts.Card:
			style = selectedCardStyle
		}

		body := renderCard(c, width-2, opts.Now)
		if opts.ShowIDs {
			body += "\n" + dimStyle.Render(c.ID)
		}

		sb.WriteString(style.Width(width).Render(body))
		sb.WriteString("\n")
	}

	style := columnStyle

	switch {
	case index == opts.List && opts.Held != "":
		style = dropColumnStyle
	case index == opts.List:
		style = activeColumnStyle
	}

	return style.Width(width).Render(strings.TrimRight(sb.String(), "\n"))
}

func renderCard(c *model.Card, width int, now time.Time) string {
	lines := []string{
		lipgloss.NewStyle().Width(width).Render(c.Title),
		badge(c.Category),
	}

	if c.DueDate != nil {
		lines = append(lines, DueLabel(*c.DueDate, now))
	}

	lines = append(lines, dimStyle.Render("added "+humanize.RelTime(c.CreatedAt, now, "ago", "from now")))

	return strings.Join(lines, "\n")
}

// DueLabel describes a due date relative to now. Text that is not a
// calendar date is shown as is.
func DueLabel(due string, now time.Time) string {
	d, err := time.Parse(time.DateOnly, due)
	if err != nil {
		return "due " + due
	}

	y, m, day := now.Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	days := int(d.Sub(today).Hours() / 24)

	switch {
	case days == 0:
		return overdueStyle.Render("due today")
	case days == 1:
		return "due tomorrow"
	case days < 0:
		return overdueStyle.Render(fmt.Sprintf("overdue, was due %s (%s)", humanize.RelTime(d, today, "ago", "from now"), due))
	default:
		return fmt.Sprintf("due %s (%s)", humanize.RelTime(d, today, "ago", "from now"), due)
	}
}

func footer(b *model.Board) string {
	s := fmt.Sprintf("%d list(s), %d card(s)", len(b.Lists), len(b.Cards))

	if orphans := b.Orphans(); len(orphans) > 0 {
		s += overdueStyle.Render(fmt.Sprintf(" · %d card(s) in no list, re-home with card move", len(orphans)))
	}

	return dimStyle.Render(s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}

// RenderOrphans lists cards no list references, with their IDs so they can
// be moved back onto the board.
func RenderOrphans(b *model.Board) string {
	orphans := b.Orphans()
	if len(orphans) == 0 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Cards in no list") + "\n")

	for _, c := range orphans {
		sb.WriteString(fmt.Sprintf("  %s  %s %s\n", dimStyle.Render(c.ID), c.Title, badge(c.Category)))
	}

	return sb.String()
}
