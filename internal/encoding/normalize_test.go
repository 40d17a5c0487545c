package encoding

import (
	"fmt"
	"testing"
	"time"

	"github.com/inovacc/kboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func testOptions() Options {
	n := 0

	return Options{
		Now: func() time.Time { return fixedNow },
		NewID: func() string {
			n++
			return fmt.Sprintf("gen-%d", n)
		},
	}
}

func sampleBoard() *model.Board {
	due := "2026-11-02"

	b := model.NewBoard()
	b.Lists = []*model.List{
		{ID: "L1", Title: "Todo", CardIDs: []string{"C2", "C1"}},
		{ID: "L2", Title: "Doing", CardIDs: []string{}},
		{ID: "L3", Title: "Done", CardIDs: []string{"C3"}},
	}
	b.Cards["C1"] = &model.Card{ID: "C1", Title: "Read chapter", CreatedAt: fixedNow.Add(-time.Hour), Category: model.CategoryAssignment, DueDate: &due}
	b.Cards["C2"] = &model.Card{ID: "C2", Title: "Lab 3", CreatedAt: fixedNow.Add(-90 * time.Second).Add(123 * time.Millisecond), Category: model.CategoryLab}
	b.Cards["C3"] = &model.Card{ID: "C3", Title: "Ship it", CreatedAt: fixedNow, Category: model.CategoryUnfinished}

	return b
}

func TestExportImport_RoundTrip(t *testing.T) {
	original := sampleBoard()

	data, err := Export(original)
	require.NoError(t, err)

	got, err := Normalize(data, testOptions())
	require.NoError(t, err)
	assert.Equal(t, original, got)

	again, err := Export(got)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestExport_PrettyPrinted(t *testing.T) {
	data, err := Export(model.NewBoard())
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"version\": 2,\n  \"lists\": [],\n  \"cards\": {}\n}\n", string(data))
}

func TestNormalize_RejectsNonObjects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"not json", "not json", ErrNotJSON},
		{"empty", "", ErrNotJSON},
		{"array", "[]", ErrNotObject},
		{"string", `"board"`, ErrNotObject},
		{"null", "null", ErrNotObject},
		{"number", "2", ErrNotObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Normalize([]byte(tt.input), testOptions())
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, b)
		})
	}
}

func TestNormalize_EmptyObject(t *testing.T) {
	b, err := Normalize([]byte(`{}`), testOptions())
	require.NoError(t, err)
	assert.Equal(t, model.NewBoard(), b)
}

func TestNormalize_WrongContainerTypes(t *testing.T) {
	b, err := Normalize([]byte(`{"version": 7, "lists": {"a": 1}, "cards": [1, 2]}`), testOptions())
	require.NoError(t, err)
	assert.Equal(t, model.SchemaVersion, b.Version)
	assert.Empty(t, b.Lists)
	assert.Empty(t, b.Cards)
}

func TestNormalize_Defaults(t *testing.T) {
	doc := `{
		"lists": [
			{"cardIds": "nope"},
			{"id": "L2", "title": "", "cardIds": ["A", 7, null, "missing", "A"]},
			{"id": "L2", "title": "dup id", "cardIds": ["A", "B"]}
		],
		"cards": {
			"A": {"title": "alpha", "category": "urgent", "dueDate": 20261101},
			"B": {"id": "ignored", "createdAt": "2026-01-02T03:04:05.678Z", "category": "lab", "dueDate": "2026-12-01"},
			"7": {"title": 42, "createdAt": 1700000000000, "category": 3}
		}
	}`

	b, err := Normalize([]byte(doc), testOptions())
	require.NoError(t, err)
	require.Len(t, b.Lists, 3)

	assert.Equal(t, "gen-1", b.Lists[0].ID)
	assert.Equal(t, UntitledTitle, b.Lists[0].Title)
	assert.Equal(t, []string{}, b.Lists[0].CardIDs)

	assert.Equal(t, "L2", b.Lists[1].ID)
	assert.Equal(t, UntitledTitle, b.Lists[1].Title)
	assert.Equal(t, []string{"A", "7"}, b.Lists[1].CardIDs)

	// duplicate list id is replaced, cards already placed are not repeated
	assert.Equal(t, "gen-2", b.Lists[2].ID)
	assert.Equal(t, []string{"B"}, b.Lists[2].CardIDs)

	a := b.Cards["A"]
	assert.Equal(t, "alpha", a.Title)
	assert.Equal(t, model.CategoryProject, a.Category)
	assert.Nil(t, a.DueDate)
	assert.Equal(t, fixedNow, a.CreatedAt)

	card := b.Cards["B"]
	assert.Equal(t, "B", card.ID)
	assert.Equal(t, UntitledTitle, card.Title)
	assert.Equal(t, model.CategoryLab, card.Category)
	require.NotNil(t, card.DueDate)
	assert.Equal(t, "2026-12-01", *card.DueDate)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 678000000, time.UTC), card.CreatedAt)

	seven := b.Cards["7"]
	assert.Equal(t, "42", seven.Title)
	assert.Equal(t, model.CategoryProject, seven.Category)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), seven.CreatedAt)
}

func TestNormalize_CategoryFallback(t *testing.T) {
	b, err := Normalize([]byte(`{"lists":[{"id":"L","title":"t","cardIds":["c"]}],"cards":{"c":{"title":"x","category":"urgent"}}}`), testOptions())
	require.NoError(t, err)
	assert.Equal(t, model.CategoryProject, b.Cards["c"].Category)
}

func TestNormalize_KeepsOrphans(t *testing.T) {
	b, err := Normalize([]byte(`{"lists":[],"cards":{"lonely":{"title":"x"}}}`), testOptions())
	require.NoError(t, err)
	require.Len(t, b.Orphans(), 1)
	assert.Equal(t, "lonely", b.Orphans()[0].ID)
}

func TestNormalize_CreatedAtOutOfRange(t *testing.T) {
	tests := []struct {
		name      string
		createdAt string
		want      time.Time
	}{
		{"far future millis", `300000000000000`, fixedNow},
		{"far past millis", `-300000000000000`, fixedNow},
		{"before epoch", `-1`, time.UnixMilli(-1).UTC()},
		{"year 9999", `253402300799000`, time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"lists":[{"id":"L","cardIds":["c"]}],"cards":{"c":{"title":"t","createdAt":` + tt.createdAt + `}}}`

			b, err := Normalize([]byte(doc), testOptions())
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.Cards["c"].CreatedAt)

			_, err = Export(b)
			require.NoError(t, err)
		})
	}
}

func TestNormalize_MappingKeyWinsOverInnerID(t *testing.T) {
	doc := `{
		"lists": [{"id": "L", "cardIds": ["X"]}],
		"cards": {
			"": {"id": "X", "title": "from empty key"},
			"X": {"title": "real X"}
		}
	}`

	b, err := Normalize([]byte(doc), testOptions())
	require.NoError(t, err)
	require.Len(t, b.Cards, 2)

	assert.Equal(t, "real X", b.Cards["X"].Title)
	assert.Equal(t, []string{"X"}, b.Lists[0].CardIDs)

	orphans := b.Orphans()
	require.Len(t, orphans, 1)
	assert.Equal(t, "gen-1", orphans[0].ID)
	assert.Equal(t, "from empty key", orphans[0].Title)
}

func TestNormalize_LegacyDefaulting(t *testing.T) {
	opts := testOptions()
	opts.Legacy = true

	b, err := Normalize([]byte(`{"lists":[{"id":"L1"}],"cards":{"C1":{"title":"x","category":"lab","dueDate":"2026-01-01"}}}`), opts)
	require.NoError(t, err)

	require.Len(t, b.Lists, 1)
	assert.Equal(t, "L1", b.Lists[0].ID)
	assert.Equal(t, UntitledTitle, b.Lists[0].Title)
	assert.Equal(t, []string{}, b.Lists[0].CardIDs)

	c := b.Cards["C1"]
	require.NotNil(t, c)
	assert.Equal(t, "x", c.Title)
	assert.Equal(t, model.CategoryProject, c.Category)
	assert.Nil(t, c.DueDate)
}

func TestVersion(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{`{"version":2}`, 2, true},
		{`{"version":1}`, 1, true},
		{`{"version":"2"}`, 0, false},
		{`{"version":2.5}`, 0, false},
		{`{}`, 0, false},
		{`nope`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Version([]byte(tt.input))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestIsLegacyDocument(t *testing.T) {
	assert.True(t, IsLegacyDocument([]byte(`{"lists":[],"cards":{}}`)))
	assert.False(t, IsLegacyDocument([]byte(`{"lists":[]}`)))
	assert.False(t, IsLegacyDocument([]byte(`[{"lists":[],"cards":{}}]`)))
	assert.False(t, IsLegacyDocument([]byte(`{`)))
}
