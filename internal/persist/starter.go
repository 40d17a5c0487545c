package persist

import (
	"time"

	"github.com/inovacc/kboard/internal/model"
)

type starterEntry struct {
	listID, listTitle string
	cardID, cardTitle string
	category          model.Category
}

var starterEntries = []starterEntry{
	{"list-backlog", "Backlog", "card-welcome", "Welcome! Select a card and press e to edit it", model.CategoryProject},
	{"list-week", "This Week", "card-reading", "Read chapter 4 and take notes", model.CategoryAssignment},
	{"list-progress", "In Progress", "card-lab", "Lab 3: linked lists", model.CategoryLab},
	{"list-review", "Review", "card-module", "Module 2 quiz review", model.CategoryMod},
	{"list-done", "Done", "card-draft", "Draft essay outline (needs polish)", model.CategoryUnfinished},
}

// Starter returns the seed board: five lists with one example card each.
// Everything but the card timestamps is fixed.
func Starter(now time.Time) *model.Board {
	b := model.NewBoard()

	for _, e := range starterEntries {
		b.Lists = append(b.Lists, &model.List{ID: e.listID, Title: e.listTitle, CardIDs: []string{e.cardID}})
		b.Cards[e.cardID] = &model.Card{
			ID:        e.cardID,
			Title:     e.cardTitle,
			CreatedAt: now,
			Category:  e.category,
		}
	}

	return b
}
