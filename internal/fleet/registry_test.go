package fleet

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtent(t *testing.T) {
	e := newExtent[string]()
	a, b, c := "a", "b", "c"

	e.register("1", &a)
	e.register("2", &b)
	e.register("3", &c)
	e.register("1", &c)

	got, ok := e.get("1")
	require.True(t, ok)
	assert.Equal(t, "a", *got, "registering an id twice keeps the first item")
	assert.Equal(t, 3, e.len())

	e.retire("2")
	e.retire("missing")
	_, ok = e.get("2")
	assert.False(t, ok)

	var order []string
	for _, v := range e.all() {
		order = append(order, *v)
	}
	assert.Equal(t, []string{"a", "c"}, order)
}

func TestGenerateUUID(t *testing.T) {
	id := generateUUID()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.NotEqual(t, id, generateUUID())
}

func TestHandleLists(t *testing.T) {
	ids := addID(nil, "x")
	ids = addID(ids, "y")
	ids = addID(ids, "x")
	assert.Equal(t, []string{"x", "y"}, ids)

	ids = removeID(ids, "x")
	ids = removeID(ids, "absent")
	assert.Equal(t, []string{"y"}, ids)

	assert.Equal(t, []string{"b", "a"}, dedupeStrings([]string{"b", "a", "b"}))
	assert.True(t, hasDuplicates([]string{"a", "b", "a"}))
	assert.False(t, hasDuplicates(nil))
}
