package core

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inovacc/kboard/internal/encoding"
	"github.com/inovacc/kboard/internal/model"
	"github.com/inovacc/kboard/internal/persist"
)

// Confirmer asks the user to approve a destructive operation.
type Confirmer func(prompt string) bool

// Confirmed approves without asking, for callers that confirmed up front.
func Confirmed(string) bool { return true }

// Service owns the board for the life of the process. Every mutation is
// saved, redrawn and announced before it returns.
type Service struct {
	adapter *persist.Adapter
	board   *model.Board
	log     *slog.Logger
	notify  func(string)
	redraw  func(*model.Board)
	now     func() time.Time
	newID   func() string
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier receives transient confirmation and failure messages.
func WithNotifier(fn func(msg string)) Option {
	return func(s *Service) { s.notify = fn }
}

// WithRenderer is called with the full board after every change.
func WithRenderer(fn func(*model.Board)) Option {
	return func(s *Service) { s.redraw = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithClock overrides the card timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDs overrides the list and card ID generator.
func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService wraps an already loaded board.
func NewService(adapter *persist.Adapter, board *model.Board, opts ...Option) *Service {
	s := &Service{
		adapter: adapter,
		board:   board,
		log:     slog.Default(),
		notify:  func(string) {},
		redraw:  func(*model.Board) {},
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Open initializes the board through the adapter (saved, then legacy, then
// starter) and returns a Service over it. A storage error is returned with a
// usable Service.
func Open(adapter *persist.Adapter, opts ...Option) (*Service, persist.Source, error) {
	b, src, err := adapter.Initialize()

	s := NewService(adapter, b, opts...)
	s.log.Debug("board ready", "source", src, "lists", len(b.Lists), "cards", len(b.Cards))

	if err != nil {
		return s, src, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return s, src, nil
}

// Apply sets options on a running Service, for views created after Open.
func (s *Service) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(s)
	}
}

// Board returns the live board. Callers must not modify it.
func (s *Service) Board() *model.Board {
	return s.board
}

// commit persists, redraws and announces a change.
func (s *Service) commit(op, message string) error {
	err := s.adapter.Save(s.board)

	s.redraw(s.board)

	if err != nil {
		s.log.Error("saving board", "op", op, "error", err)
		s.notify("Could not save board: " + err.Error())

		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	s.log.Debug("board saved", "op", op)
	s.notify(message)

	return nil
}

func (s *Service) skip(op string, err error) {
	s.log.Debug("no-op", "op", op, "reason", err)
}

// CreateList appends a new empty list and returns its ID. A blank title is a no-op.
func (s *Service) CreateList(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		s.skip("create_list", errors.New("blank title"))
		return "", nil
	}

	l := &model.List{ID: s.newID(), Title: title, CardIDs: []string{}}
	s.board.Lists = append(s.board.Lists, l)

	return l.ID, s.commit("create_list", "List added")
}

// RenameList sets a list's title. Unknown lists and blank titles are no-ops.
func (s *Service) RenameList(listID, title string) error {
	l, ok := s.board.List(listID)
	if !ok {
		s.skip("rename_list", &NotFoundError{Kind: "list", ID: listID})
		return nil
	}

	title = strings.TrimSpace(title)
	if title == "" {
		s.skip("rename_list", errors.New("blank title"))
		return nil
	}

	l.Title = title

	return s.commit("rename_list", "List renamed")
}

// DeleteList removes a list and every card it holds, once confirmed.
func (s *Service) DeleteList(listID string, confirm Confirmer) error {
	i := s.board.ListIndex(listID)
	if i < 0 {
		s.skip("delete_list", &NotFoundError{Kind: "list", ID: listID})
		return nil
	}

	l := s.board.Lists[i]

	if !confirm(fmt.Sprintf("Delete list %q and its %d card(s)?", l.Title, len(l.CardIDs))) {
		s.skip("delete_list", errors.New("declined"))
		return nil
	}

	for _, id := range l.CardIDs {
		delete(s.board.Cards, id)
	}

	s.board.Lists = slices.Delete(s.board.Lists, i, i+1)

	s.log.Info("list deleted", "list_id", listID, "cards", len(l.CardIDs))

	return s.commit("delete_list", "List deleted")
}

// CreateCard appends a new card to a list and returns its ID. An empty or
// unknown category becomes project; an empty due date means none.
func (s *Service) CreateCard(listID, title, category, dueDate string) (string, error) {
	l, ok := s.board.List(listID)
	if !ok {
		s.skip("create_card", &NotFoundError{Kind: "list", ID: listID})
		return "", nil
	}

	title = strings.TrimSpace(title)
	if title == "" {
		s.skip("create_card", errors.New("blank title"))
		return "", nil
	}

	c := &model.Card{
		ID:        s.newID(),
		Title:     title,
		CreatedAt: s.now(),
		Category:  model.CategoryOrDefault(category),
		DueDate:   optionalDate(dueDate),
	}

	s.board.Cards[c.ID] = c
	l.CardIDs = append(l.CardIDs, c.ID)

	return c.ID, s.commit("create_card", "Card added")
}

// CardEdit is the full result of an edit form.
type CardEdit struct {
	Title    string
	Category string
	DueDate  string
}

// EditCard applies an edit. A blank title cancels the whole edit; an
// unrecognized category leaves the category unchanged; an empty due date clears it.
func (s *Service) EditCard(cardID string, edit CardEdit) error {
	c, ok := s.board.Card(cardID)
	if !ok {
		s.skip("edit_card", &NotFoundError{Kind: "card", ID: cardID})
		return nil
	}

	title := strings.TrimSpace(edit.Title)
	if title == "" {
		s.skip("edit_card", errors.New("blank title"))
		return nil
	}

	c.Title = title

	if cat, ok := model.ParseCategory(strings.TrimSpace(edit.Category)); ok {
		c.Category = cat
	}

	c.DueDate = optionalDate(edit.DueDate)

	return s.commit("edit_card", "Card updated")
}

// DeleteCard removes a card from its list and from the board, once confirmed.
func (s *Service) DeleteCard(cardID string, confirm Confirmer) error {
	c, ok := s.board.Card(cardID)
	if !ok {
		s.skip("delete_card", &NotFoundError{Kind: "card", ID: cardID})
		return nil
	}

	if !confirm(fmt.Sprintf("Delete card %q?", c.Title)) {
		s.skip("delete_card", errors.New("declined"))
		return nil
	}

	if l, ok := s.board.ListOf(cardID); ok {
		l.CardIDs = slices.DeleteFunc(l.CardIDs, func(id string) bool { return id == cardID })
	}

	delete(s.board.Cards, cardID)

	return s.commit("delete_card", "Card deleted")
}

// MoveCardToList moves a card to the end of the target list. Moving a card
// onto the list that already holds it changes nothing.
func (s *Service) MoveCardToList(cardID, listID string) error {
	if _, ok := s.board.Card(cardID); !ok {
		s.skip("move_card", &NotFoundError{Kind: "card", ID: cardID})
		return nil
	}

	target, ok := s.board.List(listID)
	if !ok {
		s.skip("move_card", &NotFoundError{Kind: "list", ID: listID})
		return nil
	}

	if slices.Contains(target.CardIDs, cardID) {
		s.skip("move_card", errors.New("already in target list"))
		return nil
	}

	if from, ok := s.board.ListOf(cardID); ok {
		from.CardIDs = slices.DeleteFunc(from.CardIDs, func(id string) bool { return id == cardID })
	}

	target.CardIDs = append(target.CardIDs, cardID)

	s.log.Debug("card moved", "card_id", cardID, "list_id", listID)

	return s.commit("move_card", "Card moved to "+target.Title)
}

// Reset replaces the board with the starter board, once confirmed.
func (s *Service) Reset(confirm Confirmer) error {
	if !confirm("Reset the board to the starter content? All lists and cards will be lost.") {
		s.skip("reset", errors.New("declined"))
		return nil
	}

	s.board = persist.Starter(s.now())

	return s.commit("reset", "Board reset")
}

// Export returns the board as pretty-printed JSON.
func (s *Service) Export() ([]byte, error) {
	return encoding.Export(s.board)
}

// Import replaces the board with a normalized copy of data. On failure the
// board is untouched and the error wraps ErrInvalidDocument.
func (s *Service) Import(data []byte) error {
	b, err := encoding.Normalize(data, encoding.Options{Now: s.now, NewID: s.newID})
	if err == nil {
		// the board must encode before it replaces the current one
		_, err = encoding.Export(b)
	}

	if err != nil {
		s.log.Warn("import rejected", "error", err)
		s.notify("Import failed: " + err.Error())

		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	s.board = b

	s.log.Info("board imported", "lists", len(b.Lists), "cards", len(b.Cards), "orphans", len(b.Orphans()))

	return s.commit("import", "Board imported")
}

func optionalDate(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	return &s
}

// ParseDueDate validates form input as a calendar date. Empty input is
// allowed and means no due date.
func ParseDueDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}

	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDueDate, s)
	}

	return s, nil
}
