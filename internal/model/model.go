package model

import (
	"slices"
	"time"
)

// SchemaVersion is the only board document version the app reads as current.
const SchemaVersion = 2

// Board is the root aggregate: ordered lists plus the cards they reference.
type Board struct {
	// Version is the schema tag, always SchemaVersion once normalized
	Version int `json:"version"`

	// Lists in column order
	Lists []*List `json:"lists"`

	// Cards keyed by card ID
	Cards map[string]*Card `json:"cards"`
}

// List is a column. CardIDs defines the display order of its cards.
type List struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	CardIDs []string `json:"cardIds"`
}

// Card is a single task on the board.
type Card struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	Category  Category  `json:"category"`

	// DueDate is a calendar date (YYYY-MM-DD), nil when unset
	DueDate *string `json:"dueDate"`
}

// NewBoard returns an empty board at the current schema version.
func NewBoard() *Board {
	return &Board{
		Version: SchemaVersion,
		Lists:   []*List{},
		Cards:   map[string]*Card{},
	}
}

// List returns the list with the given ID.
func (b *Board) List(id string) (*List, bool) {
	i := b.ListIndex(id)
	if i < 0 {
		return nil, false
	}

	return b.Lists[i], true
}

// ListIndex returns the column index of the list, or -1.
func (b *Board) ListIndex(id string) int {
	return slices.IndexFunc(b.Lists, func(l *List) bool { return l.ID == id })
}

// Card returns the card with the given ID.
func (b *Board) Card(id string) (*Card, bool) {
	c, ok := b.Cards[id]
	return c, ok
}

// ListOf returns the list currently holding the card, if any.
func (b *Board) ListOf(cardID string) (*List, bool) {
	for _, l := range b.Lists {
		if slices.Contains(l.CardIDs, cardID) {
			return l, true
		}
	}

	return nil, false
}

// CardsOf returns the cards of a list in display order. IDs without a card entry are skipped.
func (b *Board) CardsOf(l *List) []*Card {
	out := make([]*Card, 0, len(l.CardIDs))

	for _, id := range l.CardIDs {
		if c, ok := b.Cards[id]; ok {
			out = append(out, c)
		}
	}

	return out
}

// Orphans returns cards that no list references, sorted by ID.
func (b *Board) Orphans() []*Card {
	listed := make(map[string]struct{}, len(b.Cards))

	for _, l := range b.Lists {
		for _, id := range l.CardIDs {
			listed[id] = struct{}{}
		}
	}

	var out []*Card

	for id, c := range b.Cards {
		if _, ok := listed[id]; !ok {
			out = append(out, c)
		}
	}

	slices.SortFunc(out, func(a, b *Card) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}

		return 0
	})

	return out
}
