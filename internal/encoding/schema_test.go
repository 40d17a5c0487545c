package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ExportIsValid(t *testing.T) {
	data, err := Export(sampleBoard())
	require.NoError(t, err)

	res, err := Validate(data)
	require.NoError(t, err)
	assert.True(t, res.Valid, "errors: %v", res.Errors)
	assert.False(t, res.Legacy)
	assert.Empty(t, res.Errors)
}

func TestValidate_ReportsViolations(t *testing.T) {
	res, err := Validate([]byte(`{"version":2,"lists":[{"id":"L1","cardIds":[]}],"cards":{"c":{"id":"c","title":"x","createdAt":"yesterday","category":"urgent"}}}`))
	require.NoError(t, err)
	require.False(t, res.Valid)
	require.NotEmpty(t, res.Errors)

	var paths []string
	for _, e := range res.Errors {
		paths = append(paths, e.Path)
	}

	assert.Contains(t, paths, "lists[0]")
	assert.Contains(t, paths, "cards.c.category")
	assert.Contains(t, paths, "cards.c.createdAt")
}

func TestValidate_Legacy(t *testing.T) {
	res, err := Validate([]byte(`{"lists":[{"id":"L1"}],"cards":{"C1":{"title":"x"}}}`))
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.True(t, res.Legacy)
}

func TestValidate_RejectsNonObjects(t *testing.T) {
	_, err := Validate([]byte("not json"))
	require.ErrorIs(t, err, ErrNotJSON)

	_, err = Validate([]byte("[]"))
	require.ErrorIs(t, err, ErrNotObject)
}

func TestPointerToPath(t *testing.T) {
	tests := map[string]string{
		"":                 "",
		"/lists/0/title":   "lists[0].title",
		"/cards/a~1b/id":   "cards.a/b.id",
		"/lists/12":        "lists[12]",
		"/cards/c/dueDate": "cards.c.dueDate",
	}

	for in, want := range tests {
		assert.Equal(t, want, pointerToPath(in), in)
	}
}
