package core

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/inovacc/kboard/internal/encoding"
	"github.com/inovacc/kboard/internal/model"
	"github.com/inovacc/kboard/internal/persist"
	"github.com/inovacc/kboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)

type harness struct {
	svc      *Service
	kv       store.Store
	adapter  *persist.Adapter
	messages []string
	redraws  int
}

func newHarness(t *testing.T, board *model.Board) *harness {
	t.Helper()

	return newHarnessWithStore(t, store.NewMemory(), board)
}

func newHarnessWithStore(t *testing.T, kv store.Store, board *model.Board) *harness {
	t.Helper()

	h := &harness{kv: kv}
	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	clock := func() time.Time { return fixedNow }

	h.adapter = persist.New(kv, persist.Keys{Board: "board.v2", Legacy: "board"},
		persist.WithClock(clock), persist.WithIDs(ids))

	if board == nil {
		board = twoListBoard()
	}

	h.svc = NewService(h.adapter, board,
		WithClock(clock),
		WithIDs(ids),
		WithNotifier(func(msg string) { h.messages = append(h.messages, msg) }),
		WithRenderer(func(*model.Board) { h.redraws++ }),
	)

	return h
}

// saved returns what is currently persisted.
func (h *harness) saved(t *testing.T) *model.Board {
	t.Helper()

	b, ok := h.adapter.Load()
	require.True(t, ok, "board was not saved")

	return b
}

func twoListBoard() *model.Board {
	b := model.NewBoard()
	b.Lists = []*model.List{
		{ID: "todo", Title: "Todo", CardIDs: []string{"c1", "c2"}},
		{ID: "done", Title: "Done", CardIDs: []string{"c3"}},
	}

	for _, id := range []string{"c1", "c2", "c3"} {
		b.Cards[id] = &model.Card{ID: id, Title: "card " + id, CreatedAt: fixedNow, Category: model.CategoryLab}
	}

	return b
}

func declined(string) bool { return false }

// snapshot copies b through its encoded form.
func snapshot(t *testing.T, b *model.Board) *model.Board {
	t.Helper()

	data, err := encoding.Export(b)
	require.NoError(t, err)

	out, err := encoding.Normalize(data, encoding.Options{})
	require.NoError(t, err)

	return out
}

func assertIntegrity(t *testing.T, b *model.Board) {
	t.Helper()

	owner := map[string]string{}
	listIDs := map[string]bool{}

	for _, l := range b.Lists {
		require.False(t, listIDs[l.ID], "duplicate list id %s", l.ID)
		listIDs[l.ID] = true

		for _, id := range l.CardIDs {
			_, ok := b.Cards[id]
			require.True(t, ok, "list %s references missing card %s", l.ID, id)

			prev, dup := owner[id]
			require.False(t, dup, "card %s in lists %s and %s", id, prev, l.ID)
			owner[id] = l.ID
		}
	}
}

func TestCreateList(t *testing.T) {
	h := newHarness(t, nil)

	id, err := h.svc.CreateList("  Review  ")
	require.NoError(t, err)
	assert.Equal(t, "id-1", id)

	b := h.svc.Board()
	require.Len(t, b.Lists, 3)
	assert.Equal(t, &model.List{ID: "id-1", Title: "Review", CardIDs: []string{}}, b.Lists[2])
	assert.Equal(t, b, h.saved(t))
	assert.Equal(t, []string{"List added"}, h.messages)
	assert.Equal(t, 1, h.redraws)
}

func TestCreateList_BlankIsNoop(t *testing.T) {
	h := newHarness(t, nil)

	for _, title := range []string{"", "   ", "\t\n"} {
		id, err := h.svc.CreateList(title)
		require.NoError(t, err)
		assert.Empty(t, id)
	}

	assert.Len(t, h.svc.Board().Lists, 2)
	assert.Empty(t, h.messages)
	assert.Zero(t, h.redraws)

	_, err := h.kv.Get("board.v2")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRenameList(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, h.svc.RenameList("done", " Shipped "))
	assert.Equal(t, "Shipped", h.svc.Board().Lists[1].Title)

	require.NoError(t, h.svc.RenameList("done", "  "))
	require.NoError(t, h.svc.RenameList("missing", "Anything"))
	assert.Equal(t, "Shipped", h.svc.Board().Lists[1].Title)
	assert.Equal(t, []string{"List renamed"}, h.messages)
}

func TestDeleteList_Cascades(t *testing.T) {
	h := newHarness(t, nil)

	var prompt string
	require.NoError(t, h.svc.DeleteList("todo", func(p string) bool {
		prompt = p
		return true
	}))

	b := h.svc.Board()
	assert.Contains(t, prompt, `"Todo"`)
	require.Len(t, b.Lists, 1)
	assert.Equal(t, []string{"c3"}, b.Lists[0].CardIDs)
	assert.NotContains(t, b.Cards, "c1")
	assert.NotContains(t, b.Cards, "c2")
	assert.Contains(t, b.Cards, "c3")
	assert.Equal(t, b, h.saved(t))
}

func TestDeleteList_DeclinedOrMissing(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, h.svc.DeleteList("todo", declined))
	require.NoError(t, h.svc.DeleteList("missing", Confirmed))

	assert.Equal(t, twoListBoard(), h.svc.Board())
	assert.Empty(t, h.messages)
}

func TestCreateCard(t *testing.T) {
	h := newHarness(t, nil)

	id, err := h.svc.CreateCard("done", " Write report ", "assignment", "2026-11-30")
	require.NoError(t, err)

	due := "2026-11-30"
	assert.Equal(t, &model.Card{ID: id, Title: "Write report", CreatedAt: fixedNow, Category: model.CategoryAssignment, DueDate: &due}, h.svc.Board().Cards[id])
	assert.Equal(t, []string{"c3", id}, h.svc.Board().Lists[1].CardIDs)
	assert.Equal(t, h.svc.Board(), h.saved(t))
}

func TestCreateCard_Defaults(t *testing.T) {
	h := newHarness(t, nil)

	unset, err := h.svc.CreateCard("todo", "no category", "", "")
	require.NoError(t, err)

	unknown, err := h.svc.CreateCard("todo", "odd category", "urgent", " ")
	require.NoError(t, err)

	for _, id := range []string{unset, unknown} {
		c := h.svc.Board().Cards[id]
		assert.Equal(t, model.CategoryProject, c.Category)
		assert.Nil(t, c.DueDate)
	}
}

func TestCreateCard_Noops(t *testing.T) {
	h := newHarness(t, nil)

	id, err := h.svc.CreateCard("missing", "title", "lab", "")
	require.NoError(t, err)
	assert.Empty(t, id)

	id, err = h.svc.CreateCard("todo", "   ", "lab", "")
	require.NoError(t, err)
	assert.Empty(t, id)

	assert.Equal(t, twoListBoard(), h.svc.Board())
}

func TestEditCard(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, h.svc.EditCard("c1", CardEdit{Title: " New title ", Category: "mod", DueDate: "2026-12-01"}))

	c := h.svc.Board().Cards["c1"]
	assert.Equal(t, "New title", c.Title)
	assert.Equal(t, model.CategoryMod, c.Category)
	require.NotNil(t, c.DueDate)
	assert.Equal(t, "2026-12-01", *c.DueDate)

	// unknown category keeps the old one, empty due date clears it
	require.NoError(t, h.svc.EditCard("c1", CardEdit{Title: "New title", Category: "urgent", DueDate: ""}))
	assert.Equal(t, model.CategoryMod, c.Category)
	assert.Nil(t, c.DueDate)

	assert.Equal(t, h.svc.Board(), h.saved(t))
}

func TestEditCard_Noops(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, h.svc.EditCard("missing", CardEdit{Title: "x", Category: "lab"}))
	require.NoError(t, h.svc.EditCard("c1", CardEdit{Title: "  ", Category: "mod", DueDate: "2026-01-01"}))

	assert.Equal(t, twoListBoard(), h.svc.Board())
	assert.Empty(t, h.messages)
}

func TestDeleteCard(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, h.svc.DeleteCard("c1", declined))
	assert.Contains(t, h.svc.Board().Cards, "c1")

	require.NoError(t, h.svc.DeleteCard("c1", Confirmed))
	assert.NotContains(t, h.svc.Board().Cards, "c1")
	assert.Equal(t, []string{"c2"}, h.svc.Board().Lists[0].CardIDs)
	assert.Equal(t, []string{"c3"}, h.svc.Board().Lists[1].CardIDs)

	require.NoError(t, h.svc.DeleteCard("c1", Confirmed))
	assert.Equal(t, []string{"Card deleted"}, h.messages)
}

func TestDeleteCard_Orphan(t *testing.T) {
	b := twoListBoard()
	b.Cards["stray"] = &model.Card{ID: "stray", Title: "stray", CreatedAt: fixedNow, Category: model.CategoryMod}

	h := newHarness(t, b)
	require.NoError(t, h.svc.DeleteCard("stray", Confirmed))
	assert.NotContains(t, h.svc.Board().Cards, "stray")
	assert.Equal(t, twoListBoard(), h.svc.Board())
}

func TestMoveCardToList(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, h.svc.MoveCardToList("c1", "done"))

	b := h.svc.Board()
	assert.Equal(t, []string{"c2"}, b.Lists[0].CardIDs)
	assert.Equal(t, []string{"c3", "c1"}, b.Lists[1].CardIDs)
	assert.Equal(t, []string{"Card moved to Done"}, h.messages)
	assert.Equal(t, b, h.saved(t))
}

func TestMoveCardToList_Idempotent(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, h.svc.MoveCardToList("c1", "done"))
	after := snapshot(t, h.svc.Board())

	require.NoError(t, h.svc.MoveCardToList("c1", "done"))
	assert.Equal(t, after, h.svc.Board())
	assert.Equal(t, []string{"c3", "c1"}, h.svc.Board().Lists[1].CardIDs)

	// same-list move of a card at the front does not reorder
	require.NoError(t, h.svc.MoveCardToList("c2", "todo"))
	assert.Equal(t, []string{"c2"}, h.svc.Board().Lists[0].CardIDs)
	assert.Len(t, h.messages, 1)
}

func TestMoveCardToList_Noops(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, h.svc.MoveCardToList("missing", "done"))
	require.NoError(t, h.svc.MoveCardToList("c1", "missing"))
	assert.Equal(t, twoListBoard(), h.svc.Board())
}

func TestMoveCardToList_Orphan(t *testing.T) {
	b := twoListBoard()
	b.Cards["stray"] = &model.Card{ID: "stray", Title: "stray", CreatedAt: fixedNow, Category: model.CategoryMod}

	h := newHarness(t, b)
	require.NoError(t, h.svc.MoveCardToList("stray", "todo"))
	assert.Equal(t, []string{"c1", "c2", "stray"}, h.svc.Board().Lists[0].CardIDs)
	assert.Empty(t, h.svc.Board().Orphans())
}

func TestReset(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, h.svc.Reset(declined))
	assert.Equal(t, twoListBoard(), h.svc.Board())

	require.NoError(t, h.svc.Reset(Confirmed))
	assert.Equal(t, persist.Starter(fixedNow), h.svc.Board())
	assert.Equal(t, h.svc.Board(), h.saved(t))
}

func TestExportImport_RoundTrip(t *testing.T) {
	h := newHarness(t, nil)
	_, err := h.svc.CreateCard("done", "with due", "unfinished", "2027-01-15")
	require.NoError(t, err)

	original := snapshot(t, h.svc.Board())

	data, err := h.svc.Export()
	require.NoError(t, err)

	other := newHarness(t, model.NewBoard())
	require.NoError(t, other.svc.Import(data))
	assert.Equal(t, original, other.svc.Board())
	assert.Equal(t, original, other.saved(t))
}

func TestImport_MalformedLeavesBoard(t *testing.T) {
	for _, doc := range []string{"not json", "[]", `"x"`, "42"} {
		t.Run(doc, func(t *testing.T) {
			h := newHarness(t, nil)

			err := h.svc.Import([]byte(doc))
			require.ErrorIs(t, err, ErrInvalidDocument)
			assert.Equal(t, twoListBoard(), h.svc.Board())
			assert.Zero(t, h.redraws)
			require.Len(t, h.messages, 1)
			assert.Contains(t, h.messages[0], "Import failed")

			_, err = h.kv.Get("board.v2")
			assert.ErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestImport_CategoryFallback(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, h.svc.Import([]byte(`{"lists":[{"id":"L","title":"t","cardIds":["c"]}],"cards":{"c":{"title":"x","category":"urgent"}}}`)))
	assert.Equal(t, model.CategoryProject, h.svc.Board().Cards["c"].Category)
}

func TestImport_OutOfRangeCreatedAt(t *testing.T) {
	for _, createdAt := range []string{"300000000000000", "-300000000000000"} {
		t.Run(createdAt, func(t *testing.T) {
			h := newHarness(t, nil)

			doc := `{"lists":[{"id":"L","cardIds":["c"]}],"cards":{"c":{"title":"t","createdAt":` + createdAt + `}}}`
			require.NoError(t, h.svc.Import([]byte(doc)))
			assert.Equal(t, fixedNow, h.svc.Board().Cards["c"].CreatedAt)
			assert.Equal(t, h.svc.Board(), h.saved(t))

			_, err := h.svc.Export()
			require.NoError(t, err)

			_, err = h.svc.CreateList("After")
			require.NoError(t, err)
		})
	}
}

type brokenStore struct {
	*store.Memory
}

func (brokenStore) Put(string, []byte) error { return errors.New("disk full") }

func TestStorageFailureKeepsState(t *testing.T) {
	h := newHarnessWithStore(t, brokenStore{store.NewMemory()}, nil)

	id, err := h.svc.CreateList("Later")
	require.ErrorIs(t, err, ErrStorage)
	assert.NotEmpty(t, id)

	_, ok := h.svc.Board().List(id)
	assert.True(t, ok, "in-memory change was lost")
	assert.Equal(t, 1, h.redraws)
	require.Len(t, h.messages, 1)
	assert.Contains(t, h.messages[0], "Could not save")
}

func TestOpen(t *testing.T) {
	kv := store.NewMemory()
	adapter := persist.New(kv, persist.Keys{Board: "board.v2", Legacy: "board"},
		persist.WithClock(func() time.Time { return fixedNow }))

	svc, src, err := Open(adapter)
	require.NoError(t, err)
	assert.Equal(t, persist.SourceSeeded, src)
	assert.Equal(t, persist.Starter(fixedNow), svc.Board())

	_, err = svc.CreateList("Extra")
	require.NoError(t, err)

	again, src, err := Open(adapter)
	require.NoError(t, err)
	assert.Equal(t, persist.SourceSaved, src)
	assert.Len(t, again.Board().Lists, 6)
}

func TestReferentialIntegrity_RandomOperations(t *testing.T) {
	h := newHarness(t, nil)
	rng := rand.New(rand.NewSource(42))

	pick := func(ids []string) string {
		if len(ids) == 0 || rng.Intn(10) == 0 {
			return "ghost"
		}

		return ids[rng.Intn(len(ids))]
	}

	for i := 0; i < 500; i++ {
		b := h.svc.Board()

		listIDs := make([]string, 0, len(b.Lists))
		for _, l := range b.Lists {
			listIDs = append(listIDs, l.ID)
		}

		cardIDs := make([]string, 0, len(b.Cards))
		for id := range b.Cards {
			cardIDs = append(cardIDs, id)
		}

		var err error

		switch rng.Intn(8) {
		case 0:
			_, err = h.svc.CreateList(fmt.Sprintf("list %d", i))
		case 1:
			err = h.svc.RenameList(pick(listIDs), fmt.Sprintf("renamed %d", i))
		case 2:
			if rng.Intn(3) == 0 {
				err = h.svc.DeleteList(pick(listIDs), Confirmed)
			}
		case 3, 4:
			_, err = h.svc.CreateCard(pick(listIDs), fmt.Sprintf("card %d", i), string(model.Categories[rng.Intn(len(model.Categories))]), "")
		case 5:
			err = h.svc.EditCard(pick(cardIDs), CardEdit{Title: fmt.Sprintf("edited %d", i), Category: "lab"})
		case 6:
			err = h.svc.DeleteCard(pick(cardIDs), Confirmed)
		case 7:
			err = h.svc.MoveCardToList(pick(cardIDs), pick(listIDs))
		}

		require.NoError(t, err)
		assertIntegrity(t, h.svc.Board())
		assert.Empty(t, h.svc.Board().Orphans())
	}

	assert.Equal(t, h.svc.Board(), h.saved(t))
}

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"  ", "", false},
		{"2026-02-28", "2026-02-28", false},
		{" 2026-02-28 ", "2026-02-28", false},
		{"2026-02-30", "", true},
		{"28/02/2026", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDueDate(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDueDate)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply(t *testing.T) {
	h := newHarness(t, nil)

	var late []string
	h.svc.Apply(WithNotifier(func(msg string) { late = append(late, msg) }))

	require.NoError(t, h.svc.RenameList("todo", "Doing"))
	assert.Equal(t, []string{"List renamed"}, late)
	assert.Empty(t, h.messages)
}
