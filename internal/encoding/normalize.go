package encoding

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inovacc/kboard/internal/model"
	"github.com/tidwall/gjson"
)

// UntitledTitle replaces missing list and card titles.
const UntitledTitle = "Untitled"

var (
	// ErrNotJSON means the input does not parse as JSON.
	ErrNotJSON = errors.New("document is not valid JSON")

	// ErrNotObject means the top-level JSON value is not an object.
	ErrNotObject = errors.New("document is not a JSON object")
)

// Options controls defaulting during normalization.
type Options struct {
	// Now supplies createdAt for cards without one. Defaults to time.Now in UTC.
	Now func() time.Time

	// NewID generates list and card IDs. Defaults to uuid.NewString.
	NewID func() string

	// Legacy drops category and due date, as the legacy schema had neither.
	Legacy bool
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}

	return time.Now().UTC()
}

func (o Options) newID() string {
	if o.NewID != nil {
		return o.NewID()
	}

	return uuid.NewString()
}

// Version returns the top-level version field of a document, if it is a number.
func Version(data []byte) (int, bool) {
	if !gjson.ValidBytes(data) {
		return 0, false
	}

	v := gjson.GetBytes(data, "version")
	if v.Type != gjson.Number || v.Num != float64(int(v.Num)) {
		return 0, false
	}

	return int(v.Num), true
}

// IsLegacyDocument reports whether data is an object carrying both lists and cards.
func IsLegacyDocument(data []byte) bool {
	if !gjson.ValidBytes(data) {
		return false
	}

	root := gjson.ParseBytes(data)

	return root.IsObject() && root.Get("lists").Exists() && root.Get("cards").Exists()
}

// Normalize parses any JSON object into a board at the current schema version.
// Only non-JSON input and non-object top-level values are rejected.
func Normalize(data []byte, opts Options) (*model.Board, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrNotJSON
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, ErrNotObject
	}

	b := model.NewBoard()

	if cards := root.Get("cards"); cards.IsObject() {
		// mapping keys win over inner ids of cards stored under an empty key
		keyed := map[string]struct{}{}
		cards.ForEach(func(key, _ gjson.Result) bool {
			if k := key.String(); k != "" {
				keyed[k] = struct{}{}
			}

			return true
		})

		cards.ForEach(func(key, value gjson.Result) bool {
			c := normalizeCard(key.String(), value, opts)
			if _, reserved := keyed[c.ID]; reserved && key.String() == "" {
				c.ID = opts.newID()
			}

			if _, taken := b.Cards[c.ID]; taken {
				c.ID = opts.newID()
			}

			b.Cards[c.ID] = c

			return true
		})
	}

	if lists := root.Get("lists"); lists.IsArray() {
		seenLists := map[string]struct{}{}
		seenCards := map[string]struct{}{}

		lists.ForEach(func(_, value gjson.Result) bool {
			l := normalizeList(value, opts)
			if _, taken := seenLists[l.ID]; taken {
				l.ID = opts.newID()
			}

			seenLists[l.ID] = struct{}{}

			// drop dangling references and keep each card in its first list only
			kept := l.CardIDs[:0]
			for _, id := range l.CardIDs {
				if _, ok := b.Cards[id]; !ok {
					continue
				}

				if _, dup := seenCards[id]; dup {
					continue
				}

				seenCards[id] = struct{}{}
				kept = append(kept, id)
			}

			l.CardIDs = kept
			b.Lists = append(b.Lists, l)

			return true
		})
	}

	return b, nil
}

func normalizeList(v gjson.Result, opts Options) *model.List {
	l := &model.List{CardIDs: []string{}}

	if id, ok := text(v.Get("id")); ok {
		l.ID = id
	} else {
		l.ID = opts.newID()
	}

	if title, ok := text(v.Get("title")); ok {
		l.Title = title
	} else {
		l.Title = UntitledTitle
	}

	if ids := v.Get("cardIds"); ids.IsArray() {
		ids.ForEach(func(_, id gjson.Result) bool {
			if s, ok := text(id); ok {
				l.CardIDs = append(l.CardIDs, s)
			}

			return true
		})
	}

	return l
}

func normalizeCard(key string, v gjson.Result, opts Options) *model.Card {
	c := &model.Card{ID: key, Category: model.DefaultCategory}

	if c.ID == "" {
		if id, ok := text(v.Get("id")); ok {
			c.ID = id
		} else {
			c.ID = opts.newID()
		}
	}

	if title, ok := text(v.Get("title")); ok {
		c.Title = title
	} else {
		c.Title = UntitledTitle
	}

	c.CreatedAt = parseTimestamp(v.Get("createdAt"), opts)

	if opts.Legacy {
		return c
	}

	if cat := v.Get("category"); cat.Type == gjson.String {
		c.Category = model.CategoryOrDefault(cat.Str)
	}

	if due := v.Get("dueDate"); due.Type == gjson.String && due.Str != "" {
		s := due.Str
		c.DueDate = &s
	}

	return c
}

// parseTimestamp accepts RFC 3339 text or epoch milliseconds. Instants that
// cannot be written back as RFC 3339 (years outside 0-9999) count as absent.
func parseTimestamp(v gjson.Result, opts Options) time.Time {
	var t time.Time

	switch v.Type {
	case gjson.String:
		parsed, err := time.Parse(time.RFC3339Nano, v.Str)
		if err != nil {
			return opts.now()
		}

		t = parsed
	case gjson.Number:
		t = time.UnixMilli(v.Int()).UTC()
	default:
		return opts.now()
	}

	if y := t.Year(); y < 0 || y > 9999 {
		return opts.now()
	}

	return t
}

// text returns non-empty string or number values as text.
func text(v gjson.Result) (string, bool) {
	switch v.Type {
	case gjson.String:
		if strings.TrimSpace(v.Str) == "" {
			return "", false
		}

		return v.Str, true
	case gjson.Number:
		return v.Raw, true
	}

	return "", false
}
