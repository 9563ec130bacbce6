package relationships

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveReferenceStringArray(t *testing.T) {
	got := RemoveReference([]any{"a", "b", "c"}, "b")
	assert.Equal(t, []any{"a", "c"}, got)
}

func TestRemoveReferenceWrapperObjects(t *testing.T) {
	value := []any{
		map[string]any{"value": "a"},
		map[string]any{"value": "b"},
	}
	got := RemoveReference(value, "b")
	assert.Equal(t, []any{map[string]any{"value": "a"}}, got)
}

func TestRemoveReferenceWrapperObjectsWithIDKey(t *testing.T) {
	value := []any{
		map[string]any{"id": "p1"},
		map[string]any{"id": "p2"},
	}
	got := RemoveReference(value, "p1")
	assert.Equal(t, []any{map[string]any{"id": "p2"}}, got)
}

func TestRemoveReferenceSingleString(t *testing.T) {
	got := RemoveReference("x", "x")
	assert.Equal(t, []any{}, got)
}

func TestRemoveReferenceNoMatch(t *testing.T) {
	value := []any{"a", "b"}
	got := RemoveReference(value, "z")
	assert.Equal(t, []any{"a", "b"}, got)
}

func TestRemoveReferenceKeepsUnknownShapes(t *testing.T) {
	value := []any{"a", float64(42), map[string]any{"weird": true}, "b"}
	got := RemoveReference(value, "b")
	assert.Equal(t, []any{"a", float64(42), map[string]any{"weird": true}}, got)
}

func TestRemoveReferenceLeavesOtherShapesUntouched(t *testing.T) {
	assert.Nil(t, RemoveReference(nil, "x"))
	assert.Equal(t, "", RemoveReference("", "x"))
	assert.Equal(t, float64(0), RemoveReference(float64(0), "x"))
	assert.Equal(t, "y", RemoveReference("y", "x"))
}

func TestContainsID(t *testing.T) {
	assert.True(t, ContainsID([]any{map[string]any{"value": "p1"}}, "p1"))
	assert.True(t, ContainsID("p1", "p1"))
	assert.False(t, ContainsID([]any{"p2"}, "p1"))
	assert.False(t, ContainsID(nil, "p1"))
}

func TestNormalizeShapes(t *testing.T) {
	assert.Empty(t, Normalize(nil, "products"))
	assert.Empty(t, Normalize("", "products"))
	assert.Empty(t, Normalize(float64(0), "products"))

	single := Normalize("p1", "products")
	assert.Equal(t, []*Ref{{Value: "p1", RelationTo: "products"}}, single)

	mixed := Normalize([]any{
		"p1",
		map[string]any{"value": "p2", "relationTo": "events"},
		map[string]any{"id": "p3"},
		map[string]any{"unrelated": "junk"},
	}, "products")
	assert.Equal(t, []*Ref{
		{Value: "p1", RelationTo: "products"},
		{Value: "p2", RelationTo: "events"},
		{Value: "p3", RelationTo: "products"},
	}, mixed)
}

func TestLinksIntoRegistry(t *testing.T) {
	products := LinksInto("products")
	assert.Equal(t, []Link{{Collection: "products", Field: "relatedProducts"}}, products)

	technologies := LinksInto("technologies")
	assert.Equal(t, []Link{{Collection: "projects", Field: "technologies"}}, technologies)

	assert.Empty(t, LinksInto("partners"))
}

func TestIDs(t *testing.T) {
	refs := []*Ref{{Value: "a"}, nil, {Value: ""}, {Value: "b"}}
	assert.Equal(t, []string{"a", "b"}, IDs(refs))
}
