package cli

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/kboard/internal/core"
	"github.com/inovacc/kboard/internal/model"
)

const fmtField = " %s\n %s\n\n"

type formResult int

const (
	formOpen formResult = iota
	formSubmitted
	formCancelled
)

const (
	fieldTitle = iota
	fieldCategory
	fieldDue
	fieldCount
)

// cardForm adds a card to listID, or edits cardID when it is set.
type cardForm struct {
	cardID   string
	listID   string
	title    textinput.Model
	due      textinput.Model
	category int
	focus    int
	err      string
}

func newCardForm(maxTitle int, listID string, c *model.Card) cardForm {
	title := textinput.New()
	title.Placeholder = "What needs doing?"
	title.CharLimit = maxTitle
	title.Width = 48
	title.Cursor.Style = focusedStyle

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD (optional)"
	due.CharLimit = 10
	due.Width = 12
	due.Cursor.Style = focusedStyle

	f := cardForm{
		listID:   listID,
		title:    title,
		due:      due,
		category: slices.Index(model.Categories, model.DefaultCategory),
	}

	if c != nil {
		f.cardID = c.ID
		f.title.SetValue(c.Title)

		if i := slices.Index(model.Categories, c.Category); i >= 0 {
			f.category = i
		}

		if c.DueDate != nil {
			f.due.SetValue(*c.DueDate)
		}
	}

	f.setFocus(fieldTitle)

	return f
}

func (f *cardForm) setFocus(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount

	f.title.Blur()
	f.title.PromptStyle = noStyle
	f.due.Blur()
	f.due.PromptStyle = noStyle

	switch f.focus {
	case fieldTitle:
		f.title.PromptStyle = focusedStyle
		return f.title.Focus()
	case fieldDue:
		f.due.PromptStyle = focusedStyle
		return f.due.Focus()
	}

	return nil
}

func (f *cardForm) edit() core.CardEdit {
	return core.CardEdit{
		Title:    f.title.Value(),
		Category: string(model.Categories[f.category]),
		DueDate:  f.due.Value(),
	}
}

func (f *cardForm) update(msg tea.Msg) (formResult, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return formOpen, f.updateInputs(msg)
	}

	switch keyMsg.String() {
	case "esc", "ctrl+c":
		return formCancelled, nil

	case "enter":
		due, err := core.ParseDueDate(f.due.Value())
		if err != nil {
			f.err = err.Error()
			return formOpen, f.setFocus(fieldDue)
		}

		f.due.SetValue(due)

		return formSubmitted, nil

	case "tab", "down":
		return formOpen, f.setFocus(f.focus + 1)

	case "shift+tab", "up":
		return formOpen, f.setFocus(f.focus - 1)
	}

	if f.focus == fieldCategory {
		switch keyMsg.String() {
		case "left", "h":
			f.category = (f.category + len(model.Categories) - 1) % len(model.Categories)
		case "right", "l", " ", "space":
			f.category = (f.category + 1) % len(model.Categories)
		}

		return formOpen, nil
	}

	f.err = ""

	return formOpen, f.updateInputs(msg)
}

// Only the focused input reacts, so both can be updated unconditionally.
func (f *cardForm) updateInputs(msg tea.Msg) tea.Cmd {
	var titleCmd, dueCmd tea.Cmd

	f.title, titleCmd = f.title.Update(msg)
	f.due, dueCmd = f.due.Update(msg)

	return tea.Batch(titleCmd, dueCmd)
}

func (f *cardForm) view() string {
	heading := "Add card"
	if f.cardID != "" {
		heading = "Edit card"
	}

	s := titleStyle.Render(heading) + "\n\n"
	s += fmt.Sprintf(fmtField, blurredStyle.Render("Title:"), f.title.View())

	var cats string

	for i, c := range model.Categories {
		label := c.Label()

		switch {
		case i == f.category && f.focus == fieldCategory:
			label = focusedStyle.Render("‹" + label + "›")
		case i == f.category:
			label = badge(c)
		default:
			label = blurredStyle.Render(label)
		}

		cats += label + " "
	}

	s += fmt.Sprintf(fmtField, blurredStyle.Render("Category:"), cats)
	s += fmt.Sprintf(fmtField, blurredStyle.Render("Due date:"), f.due.View())

	if f.err != "" {
		s += errorStyle.Render(" "+f.err) + "\n\n"
	}

	s += blurredStyle.Render(" tab: next field • ←/→: category • enter: save • esc: cancel")

	return dialogStyle.Render(s)
}

type promptKind int

const (
	promptNewList promptKind = iota
	promptRenameList
	promptExport
	promptImport
	promptPassword
)

// promptForm is a single-line input dialog.
type promptForm struct {
	kind  promptKind
	label string
	input textinput.Model
}

func newPrompt(kind promptKind, label, value string, limit int) promptForm {
	in := textinput.New()
	in.CharLimit = limit
	in.Width = 48
	in.Cursor.Style = focusedStyle
	in.PromptStyle = focusedStyle
	in.SetValue(value)
	in.Focus()

	if kind == promptPassword {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}

	return promptForm{kind: kind, label: label, input: in}
}

func (p *promptForm) update(msg tea.Msg) (formResult, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "ctrl+c":
			return formCancelled, nil
		case "enter":
			return formSubmitted, nil
		}
	}

	var cmd tea.Cmd

	p.input, cmd = p.input.Update(msg)

	return formOpen, cmd
}

func (p *promptForm) view() string {
	s := fmt.Sprintf(fmtField, blurredStyle.Render(p.label), p.input.View())
	s += blurredStyle.Render(" enter: ok • esc: cancel")

	return dialogStyle.Render(s)
}
