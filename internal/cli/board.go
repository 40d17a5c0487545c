package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/kboard/internal/core"
	"github.com/inovacc/kboard/internal/encoding"
	"github.com/inovacc/kboard/internal/model"
)

const (
	statusTTL         = 3 * time.Second
	defaultExportPath = "kboard-export.json"
	pathLimit         = 512
)

type mode int

const (
	modeBoard mode = iota
	modeCardForm
	modePrompt
	modeConfirm
)

type confirmDialog struct {
	text   string
	action func() error
}

type clearStatusMsg struct{ seq int }

// importLoadedMsg carries an import file read off the Update loop. The board
// is only replaced once it arrives.
type importLoadedMsg struct {
	path string
	data []byte
	err  error
}

// BoardModel is the interactive board. Every change goes through the
// core.Service; the view is rebuilt from the service's board on each frame.
type BoardModel struct {
	svc      *core.Service
	keys     boardKeyMap
	help     help.Model
	now      func() time.Time
	maxTitle int

	width int

	// cursor
	list int
	card int

	// card picked up for a move, empty when none
	held string

	mode    mode
	form    cardForm
	prompt  promptForm
	confirm confirmDialog

	// sealed backup waiting for its password
	sealed []byte

	status    string
	statusErr bool
	statusSeq int

	quitting bool
}

// NewBoardModel wires the model to svc. Service notifications become the
// status line.
func NewBoardModel(svc *core.Service, maxTitle int) *BoardModel {
	m := &BoardModel{
		svc:      svc,
		keys:     boardKeys,
		help:     help.New(),
		now:      time.Now,
		maxTitle: maxTitle,
	}

	svc.Apply(core.WithNotifier(m.notify))

	return m
}

func (m *BoardModel) notify(msg string) {
	m.status = msg
	m.statusErr = false
	m.statusSeq++
}

// check marks the status line as an error when an operation failed. The
// service has already announced the failure.
func (m *BoardModel) check(err error) {
	if err != nil {
		m.statusErr = true
	}
}

func (m *BoardModel) fail(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = true
	m.statusSeq++
}

func (m *BoardModel) Init() tea.Cmd {
	return nil
}

func (m *BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	seq := m.statusSeq

	cmd := m.update(msg)
	m.clamp()

	if m.statusSeq != seq {
		next := m.statusSeq
		cmd = tea.Batch(cmd, tea.Tick(statusTTL, func(time.Time) tea.Msg {
			return clearStatusMsg{seq: next}
		}))
	}

	return m, cmd
}

func (m *BoardModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

		return nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}

		return nil

	case importLoadedMsg:
		return m.importLoaded(msg)
	}

	switch m.mode {
	case modeCardForm:
		return m.updateCardForm(msg)
	case modePrompt:
		return m.updatePrompt(msg)
	case modeConfirm:
		return m.updateConfirm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if m.held != "" {
		return m.updateHolding(keyMsg)
	}

	return m.updateBoard(keyMsg)
}

func (m *BoardModel) updateBoard(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Left):
		m.list--
		m.card = 0

	case key.Matches(msg, m.keys.Right):
		m.list++
		m.card = 0

	case key.Matches(msg, m.keys.Up):
		m.card--

	case key.Matches(msg, m.keys.Down):
		m.card++

	case key.Matches(msg, m.keys.AddList):
		return m.openPrompt(promptNewList, "New list title:", "", m.maxTitle)

	case key.Matches(msg, m.keys.Export):
		return m.openPrompt(promptExport, "Export to file:", defaultExportPath, pathLimit)

	case key.Matches(msg, m.keys.Import):
		return m.openPrompt(promptImport, "Import from file:", defaultExportPath, pathLimit)

	case key.Matches(msg, m.keys.Reset):
		m.ask("Reset the board to the starter content? All lists and cards will be lost.", func() error {
			return m.svc.Reset(core.Confirmed)
		})
	}

	l := m.currentList()
	if l == nil {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.RenameList):
		return m.openPrompt(promptRenameList, "Rename list:", l.Title, m.maxTitle)

	case key.Matches(msg, m.keys.DeleteList):
		listID := l.ID
		m.ask(fmt.Sprintf("Delete list %q and its %d card(s)?", l.Title, len(l.CardIDs)), func() error {
			return m.svc.DeleteList(listID, core.Confirmed)
		})

	case key.Matches(msg, m.keys.AddCard):
		m.form = newCardForm(m.maxTitle, l.ID, nil)
		m.mode = modeCardForm

		return m.form.title.Focus()
	}

	c := m.currentCard()
	if c == nil {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.EditCard):
		m.form = newCardForm(m.maxTitle, l.ID, c)
		m.mode = modeCardForm

		return m.form.title.Focus()

	case key.Matches(msg, m.keys.DeleteCard):
		cardID := c.ID
		m.ask(fmt.Sprintf("Delete card %q?", c.Title), func() error {
			return m.svc.DeleteCard(cardID, core.Confirmed)
		})

	case key.Matches(msg, m.keys.Move):
		m.held = c.ID
		m.notify(fmt.Sprintf("Moving %q: choose a list and press space to drop", c.Title))
	}

	return nil
}

// updateHolding handles keys while a card is picked up. Only list
// navigation, drop and cancel apply.
func (m *BoardModel) updateHolding(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.list--

	case key.Matches(msg, m.keys.Right):
		m.list++

	case key.Matches(msg, m.keys.Move), msg.String() == "enter":
		m.drop()

	case key.Matches(msg, m.keys.Cancel):
		m.held = ""
		m.notify("Move cancelled")

	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	}

	return nil
}

// drop moves the held card onto the list under the cursor and follows it.
func (m *BoardModel) drop() {
	cardID := m.held
	m.held = ""

	l := m.currentList()
	if l == nil {
		return
	}

	m.check(m.svc.MoveCardToList(cardID, l.ID))

	m.selectCard(cardID)
}

func (m *BoardModel) selectCard(cardID string) {
	b := m.svc.Board()

	for i, l := range b.Lists {
		for j, c := range b.CardsOf(l) {
			if c.ID == cardID {
				m.list, m.card = i, j
				return
			}
		}
	}
}

func (m *BoardModel) ask(text string, action func() error) {
	m.confirm = confirmDialog{text: text, action: action}
	m.mode = modeConfirm
}

func (m *BoardModel) updateConfirm(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		m.mode = modeBoard
		m.check(m.confirm.action())
		m.confirm = confirmDialog{}

	case "n", "N", "esc", "ctrl+c":
		m.mode = modeBoard
		m.confirm = confirmDialog{}
	}

	return nil
}

func (m *BoardModel) openPrompt(kind promptKind, label, value string, limit int) tea.Cmd {
	m.prompt = newPrompt(kind, label, value, limit)
	m.mode = modePrompt

	return m.prompt.input.Focus()
}

func (m *BoardModel) updatePrompt(msg tea.Msg) tea.Cmd {
	res, cmd := m.prompt.update(msg)

	switch res {
	case formCancelled:
		m.mode = modeBoard
		m.sealed = nil

		return nil

	case formSubmitted:
		m.mode = modeBoard
		return m.submitPrompt(m.prompt.kind, m.prompt.input.Value())
	}

	return cmd
}

func (m *BoardModel) submitPrompt(kind promptKind, value string) tea.Cmd {
	switch kind {
	case promptNewList:
		id, err := m.svc.CreateList(value)
		m.check(err)

		if id != "" {
			m.list = len(m.svc.Board().Lists) - 1
			m.card = 0
		}

	case promptRenameList:
		if l := m.currentList(); l != nil {
			m.check(m.svc.RenameList(l.ID, value))
		}

	case promptExport:
		m.export(value)

	case promptImport:
		return readImportFile(value)

	case promptPassword:
		data := m.sealed
		m.sealed = nil

		plain, err := encoding.Open(data, value)
		if err != nil {
			m.fail("Import failed: %v", err)
			return nil
		}

		m.importBoard(plain)
	}

	return nil
}

func (m *BoardModel) export(path string) {
	if path == "" {
		return
	}

	data, err := m.svc.Export()
	if err != nil {
		m.fail("Export failed: %v", err)
		return
	}

	if err := encoding.WriteFile(path, data, 0o644); err != nil {
		m.fail("Export failed: %v", err)
		return
	}

	m.notify("Exported to " + path)
}

func readImportFile(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := encoding.ReadFile(path)
		return importLoadedMsg{path: path, data: data, err: err}
	}
}

func (m *BoardModel) importLoaded(msg importLoadedMsg) tea.Cmd {
	if msg.err != nil {
		m.fail("Import failed: %v", msg.err)
		return nil
	}

	if encoding.IsSealed(msg.data) {
		m.sealed = msg.data
		return m.openPrompt(promptPassword, "Password for "+msg.path+":", "", 256)
	}

	m.importBoard(msg.data)

	return nil
}

func (m *BoardModel) importBoard(data []byte) {
	if err := m.svc.Import(data); err != nil {
		m.check(err)
		return
	}

	m.list, m.card, m.held = 0, 0, ""
}

func (m *BoardModel) updateCardForm(msg tea.Msg) tea.Cmd {
	res, cmd := m.form.update(msg)

	switch res {
	case formCancelled:
		m.mode = modeBoard
		return nil

	case formSubmitted:
		m.mode = modeBoard

		if m.form.cardID != "" {
			m.check(m.svc.EditCard(m.form.cardID, m.form.edit()))
			return nil
		}

		edit := m.form.edit()
		id, err := m.svc.CreateCard(m.form.listID, edit.Title, edit.Category, edit.DueDate)
		m.check(err)

		if id != "" {
			m.selectCard(id)
		}

		return nil
	}

	return cmd
}

func (m *BoardModel) currentList() *model.List {
	lists := m.svc.Board().Lists
	if m.list < 0 || m.list >= len(lists) {
		return nil
	}

	return lists[m.list]
}

func (m *BoardModel) currentCard() *model.Card {
	l := m.currentList()
	if l == nil {
		return nil
	}

	cards := m.svc.Board().CardsOf(l)
	if m.card < 0 || m.card >= len(cards) {
		return nil
	}

	return cards[m.card]
}

// clamp keeps the cursor on the board after lists or cards disappear.
func (m *BoardModel) clamp() {
	b := m.svc.Board()

	m.list = min(max(m.list, 0), max(len(b.Lists)-1, 0))

	cards := 0
	if l := m.currentList(); l != nil {
		cards = len(b.CardsOf(l))
	}

	m.card = min(max(m.card, 0), max(cards-1, 0))

	if m.held != "" {
		if _, ok := b.Card(m.held); !ok {
			m.held = ""
		}
	}
}

func (m *BoardModel) View() string {
	if m.quitting {
		return ""
	}

	b := m.svc.Board()

	s := titleStyle.Render("kboard") + "\n\n"
	s += RenderBoard(b, RenderOptions{
		Width: m.width - docStyle.GetHorizontalFrameSize(),
		Now:   m.now(),
		List:  m.list,
		Card:  m.card,
		Held:  m.held,
	})
	s += "\n\n"

	switch m.mode {
	case modeCardForm:
		s += m.form.view() + "\n"
	case modePrompt:
		s += m.prompt.view() + "\n"
	case modeConfirm:
		s += dialogStyle.Render(m.confirm.text+"\n\n"+blurredStyle.Render("y: yes • n: no")) + "\n"
	}

	if m.status != "" {
		style := successStyle
		if m.statusErr {
			style = errorStyle
		}

		s += style.Render(m.status) + "\n"
	}

	s += m.help.View(m.keys)

	return docStyle.Render(s)
}

// Status returns the current status line, for tests and callers embedding
// the model.
func (m *BoardModel) Status() string {
	return m.status
}
